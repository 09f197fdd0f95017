// fall-detector - detect falls in video footage using motion heuristics
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrightnessAtDarknessThresholdIsDay(t *testing.T) {
	conf := DefaultConfig()

	assert.Equal(t, Day, conf.ModeFor(conf.DarknessThreshold).Mode)
	assert.Equal(t, Night, conf.ModeFor(conf.DarknessThreshold-1).Mode)
}

func TestModeParamsComeFromModeConfig(t *testing.T) {
	conf := DefaultConfig()

	day := conf.ModeFor(200)
	assert.Equal(t, "DAY", day.Label)
	assert.Equal(t, conf.Day.BlurSize, day.BlurSize)
	assert.Equal(t, conf.Day.PixelThreshold, day.PixelThreshold)
	assert.Equal(t, conf.Day.MinArea, day.MinArea)
	assert.Equal(t, conf.Day.VelocityThreshold, day.VelocityThreshold)
	assert.False(t, day.Equalize)
	assert.False(t, day.Tone.Enabled)

	night := conf.ModeFor(3)
	assert.Equal(t, "NIGHT", night.Label)
	assert.Equal(t, conf.Night.BlurSize, night.BlurSize)
	assert.Equal(t, conf.Night.MinArea, night.MinArea)
	assert.Equal(t, conf.Night.ClipLimit, night.ClipLimit)
	assert.True(t, night.Equalize)
	assert.Equal(t, conf.NightTone, night.Tone)
}

func TestNightIsMoreSensitiveThanDay(t *testing.T) {
	conf := DefaultConfig()
	day, night := conf.ModeFor(200), conf.ModeFor(3)

	assert.Greater(t, night.BlurSize, day.BlurSize)
	assert.Less(t, night.PixelThreshold, day.PixelThreshold)
	assert.Less(t, night.MinArea, day.MinArea)
	assert.Less(t, night.VelocityThreshold, day.VelocityThreshold)
}

func TestSelectModeMeasuresFrame(t *testing.T) {
	conf := DefaultConfig()

	frame := NewFrame(10, 10)
	frame.Fill(19)
	params, brightness := conf.SelectMode(frame)
	assert.Equal(t, Night, params.Mode)
	assert.Equal(t, 19.0, brightness)

	// Half 0, half 40 averages to exactly the threshold.
	for i := range frame.Pix {
		frame.Pix[i] = uint8(40 * (i % 2))
	}
	params, brightness = conf.SelectMode(frame)
	assert.Equal(t, Day, params.Mode)
	assert.Equal(t, 20.0, brightness)
}
