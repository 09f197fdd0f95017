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
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fallRecorder struct {
	events []FallEvent
}

func (r *fallRecorder) FallDetected(e FallEvent) {
	r.events = append(r.events, e)
}

// testConfig tracks every frame without smoothing so synthetic blobs give
// exact velocities.
func testConfig() Config {
	conf := DefaultConfig()
	conf.Day.MinArea = 500
	conf.Day.VelocityThreshold = 5
	conf.Night.MinArea = 200
	conf.AnalysisStride = 1
	conf.SmoothingWindow = 1
	return conf
}

func newTestAnalyzer(t *testing.T, conf Config) (*TestFrameMaker, *fallRecorder) {
	recorder := new(fallRecorder)
	analyzer, err := NewAnalyzer(conf, recorder)
	require.NoError(t, err)
	t.Cleanup(analyzer.Close)
	return MakeTestFrameMaker(analyzer), recorder
}

func TestNewAnalyzerValidatesConfig(t *testing.T) {
	conf := DefaultConfig()
	conf.AnalysisStride = 0
	_, err := NewAnalyzer(conf, nil)
	assert.EqualError(t, err, "analysis-stride should be positive")
}

func TestStaticSceneHasNoFall(t *testing.T) {
	tfm, recorder := newTestAnalyzer(t, testConfig())
	tfm.AddBackgroundFrames(5).AddStaticBlobFrames(20)

	assert.Empty(t, recorder.events)
	for i, f := range tfm.Frames() {
		assert.Equal(t, Day, f.Mode)
		if i == 5 {
			// The blob appearing is motion, but not downward motion.
			assert.True(t, f.HasBlob)
			assert.Equal(t, 0, f.Counter)
			continue
		}
		assert.Equal(t, 0, f.Area, "frame %d", i)
	}
	assert.False(t, tfm.analyzer.State().Detected)
	assert.Equal(t, 25, tfm.analyzer.FrameCount())
}

func TestFallingBlobIsDetected(t *testing.T) {
	tfm, recorder := newTestAnalyzer(t, testConfig())
	tfm.AddStaticBlobFrames(10).AddFallingBlobFrames(10)

	require.Len(t, recorder.events, 1)
	event := recorder.events[0]
	assert.Equal(t, 15, event.FrameIndex)
	assert.InDelta(t, 0.5, event.ElapsedSeconds, 1e-6)
	assert.False(t, event.DetectedAt.IsZero())

	frames := tfm.Frames()
	for i := 0; i < 10; i++ {
		assert.False(t, frames[i].HasBlob, "frame %d", i)
	}

	assert.True(t, frames[10].HasBlob)
	assert.Equal(t, Horizontal, frames[10].Posture)
	assert.Greater(t, frames[10].Area, 500)
	assert.Equal(t, 0, frames[10].DY)
	assert.Equal(t, 0, frames[10].Counter)

	for i := 11; i < 20; i++ {
		assert.Equal(t, 10, frames[i].DY, "frame %d", i)
		assert.Equal(t, i-10, frames[i].Counter, "frame %d", i)
		assert.Equal(t, i == 15, frames[i].Fall, "frame %d", i)
	}

	state := tfm.analyzer.State()
	assert.True(t, state.Detected)
	assert.Equal(t, 15, state.FrameIndex)
}

func TestFallIsReportedOnce(t *testing.T) {
	tfm, recorder := newTestAnalyzer(t, testConfig())
	tfm.AddStaticBlobFrames(5).AddFallingBlobFrames(10)
	tfm.AddStaticBlobFrames(5).AddFallingBlobFrames(8)

	assert.Len(t, recorder.events, 1)
}

func TestAnalysisIsDeterministic(t *testing.T) {
	run := func() []Telemetry {
		tfm, _ := newTestAnalyzer(t, testConfig())
		tfm.AddStaticBlobFrames(4).AddFallingBlobFrames(12).AddStaticBlobFrames(3)
		return tfm.Frames()
	}
	assert.Equal(t, run(), run())
}

func TestLosingTheBlobResetsValidation(t *testing.T) {
	tfm, recorder := newTestAnalyzer(t, testConfig())
	tfm.AddStaticBlobFrames(10).AddFallingBlobFrames(3)
	assert.Equal(t, 2, tfm.analyzer.validator.Counter())

	tfm.AddStaticBlobFrames(1)
	assert.False(t, tfm.Frames()[13].HasBlob)
	assert.Equal(t, 0, tfm.analyzer.validator.Counter())
	assert.Equal(t, 1, tfm.analyzer.tracker.HistoryLen())

	tfm.AddFallingBlobFrames(4)
	assert.Empty(t, recorder.events)
	assert.Equal(t, 4, tfm.analyzer.validator.Counter())

	tfm.AddFallingBlobFrames(1)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, 18, recorder.events[0].FrameIndex)
}

func TestVerticalMovementIsNotAFall(t *testing.T) {
	tfm, recorder := newTestAnalyzer(t, testConfig())
	tfm.Blob = image.Rect(60, 20, 100, 120)
	tfm.AddStaticBlobFrames(5).AddFallingBlobFrames(8)

	assert.Empty(t, recorder.events)
	frames := tfm.Frames()
	for _, f := range frames[6:] {
		assert.Equal(t, Vertical, f.Posture)
		assert.Equal(t, 10, f.DY)
	}
}

func TestImplausiblyFastMovementIsNotAFall(t *testing.T) {
	conf := testConfig()
	conf.MaxDY = 25
	tfm, recorder := newTestAnalyzer(t, conf)
	tfm.FallStep = 30
	tfm.AddStaticBlobFrames(5).AddFallingBlobFrames(5)

	assert.Empty(t, recorder.events)
	frames := tfm.Frames()
	for _, f := range frames[6:] {
		assert.Equal(t, 30, f.DY)
		assert.Equal(t, 0, f.Counter)
	}
}

func TestDarkSceneUsesNightMode(t *testing.T) {
	tfm, _ := newTestAnalyzer(t, testConfig())
	tfm.BackgroundVal = 5
	tfm.BlobVal = 15
	tfm.AddStaticBlobFrames(3)

	for _, f := range tfm.Frames() {
		assert.Equal(t, Night, f.Mode)
		assert.Equal(t, 200, f.MinArea)
		assert.Equal(t, 20.0, f.VelocityThreshold)
	}
}

func TestFrameSizeChangeRestartsAnalysis(t *testing.T) {
	tfm, _ := newTestAnalyzer(t, testConfig())
	tfm.AddStaticBlobFrames(3)

	tfm.Width, tfm.Height = 100, 100
	tfm.Blob = image.Rect(10, 10, 60, 30)
	tfm.AddStaticBlobFrames(2)

	frames := tfm.Frames()
	require.Len(t, frames, 5)
	assert.Equal(t, 0, frames[3].Area)
	assert.Equal(t, 0, frames[4].Area)
}
