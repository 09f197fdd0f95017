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

import "image/color"

type LightMode int

const (
	Day LightMode = iota
	Night
)

func (m LightMode) String() string {
	switch m {
	case Day:
		return "DAY"
	case Night:
		return "NIGHT"
	default:
		return "UNKNOWN"
	}
}

// ModeParams are the tunables in effect for one frame.
type ModeParams struct {
	Mode              LightMode
	BlurSize          int
	PixelThreshold    uint8
	MinArea           int
	VelocityThreshold float64
	Equalize          bool
	ClipLimit         float64
	Tone              ToneConfig

	// Label and Color are used by overlays to show the active mode.
	Label string
	Color color.RGBA
}

var (
	dayColor   = color.RGBA{R: 255, G: 215, A: 255}
	nightColor = color.RGBA{R: 80, G: 120, B: 255, A: 255}
)

// ModeFor picks the light mode for a frame with the given mean brightness.
// The darkness threshold is an exclusive lower bound for night mode.
func (conf *Config) ModeFor(brightness float64) ModeParams {
	if brightness < conf.DarknessThreshold {
		return newModeParams(Night, conf.Night, conf.NightTone, nightColor)
	}
	return newModeParams(Day, conf.Day, ToneConfig{}, dayColor)
}

// SelectMode measures the brightness of frame and returns it along with the
// mode parameters for it.
func (conf *Config) SelectMode(frame *Frame) (ModeParams, float64) {
	brightness := frame.Mean()
	return conf.ModeFor(brightness), brightness
}

func newModeParams(mode LightMode, mc ModeConfig, tone ToneConfig, c color.RGBA) ModeParams {
	return ModeParams{
		Mode:              mode,
		BlurSize:          mc.BlurSize,
		PixelThreshold:    mc.PixelThreshold,
		MinArea:           mc.MinArea,
		VelocityThreshold: mc.VelocityThreshold,
		Equalize:          mc.Equalize,
		ClipLimit:         mc.ClipLimit,
		Tone:              tone,
		Label:             mode.String(),
		Color:             c,
	}
}
