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
	"log"
	"time"

	"github.com/TheCacophonyProject/fall-detector/loglimiter"
)

const minLogInterval = time.Minute

// FallEvent is emitted once per stream when a fall is confirmed.
type FallEvent struct {
	FrameIndex     int
	ElapsedSeconds float64
	DetectedAt     time.Time
}

// FallListener is told about confirmed falls. FallDetected is called from
// the frame loop, so implementations must hand slow work off elsewhere.
type FallListener interface {
	FallDetected(FallEvent)
}

// Telemetry describes what the analyzer saw in one frame.
type Telemetry struct {
	FrameIndex        int
	Mode              LightMode
	Brightness        float64
	DY                int
	Area              int
	Posture           Posture
	MinArea           int
	VelocityThreshold float64

	// HasBlob is set when a blob was tracked this frame, CentroidY is then
	// the smoothed vertical centroid.
	HasBlob   bool
	CentroidY float64
	Counter   int
	Fall      bool
}

// Analyzer runs the fall detection pipeline over the frames of one stream.
// It holds all of the state for that stream, so independent streams each
// need their own Analyzer.
type Analyzer struct {
	conf       Config
	listener   FallListener
	pre        *Preprocessor
	extractor  *MotionExtractor
	tracker    *VelocityTracker
	validator  *FallValidator
	processed  *Frame
	previous   *Frame
	primed     bool
	frameIndex int
	mode       LightMode
	log        *loglimiter.LogLimiter
}

// NewAnalyzer validates conf and returns an analyzer ready for the first
// frame of a stream. listener may be nil.
func NewAnalyzer(conf Config, listener FallListener) (*Analyzer, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		conf:      conf,
		listener:  listener,
		pre:       NewPreprocessor(),
		extractor: NewMotionExtractor(),
		tracker:   NewVelocityTracker(conf.AnalysisStride, conf.SmoothingWindow),
		validator: NewFallValidator(conf.ConsecutiveValidations, conf.MaxDY),
		processed: new(Frame),
		previous:  new(Frame),
		mode:      Day,
		log:       loglimiter.New(minLogInterval),
	}, nil
}

// SetName prefixes the analyzer's log messages with name.
func (a *Analyzer) SetName(name string) {
	a.log = loglimiter.NewWithPrefix(minLogInterval, name+": ")
}

// Process analyses the next frame of the stream. Frames must be given in
// capture order. The frame is not retained.
func (a *Analyzer) Process(frame *Frame) Telemetry {
	index := a.frameIndex
	a.frameIndex++

	params, brightness := a.conf.SelectMode(frame)
	if params.Mode != a.mode {
		a.log.Printf("light mode changed to %s (brightness %.1f)", params.Mode, brightness)
		a.mode = params.Mode
	}

	t := Telemetry{
		FrameIndex:        index,
		Mode:              params.Mode,
		Brightness:        brightness,
		Posture:           PostureUnknown,
		MinArea:           params.MinArea,
		VelocityThreshold: params.VelocityThreshold,
	}

	a.pre.Process(frame, params, a.processed)

	if a.primed && !a.processed.SameSize(a.previous) {
		a.log.Printf("frame size changed to %dx%d, restarting motion analysis", frame.Width, frame.Height)
		a.primed = false
		a.loseTracking()
	}

	if a.primed {
		a.analyse(frame, params, &t)
	}

	a.processed, a.previous = a.previous, a.processed
	a.primed = true

	if a.conf.Verbose {
		log.Printf("%d: mode=%s brightness=%.1f area=%d dy=%d posture=%s counter=%d",
			t.FrameIndex, t.Mode, t.Brightness, t.Area, t.DY, t.Posture, t.Counter)
	}
	return t
}

func (a *Analyzer) analyse(frame *Frame, params ModeParams, t *Telemetry) {
	_, moments := a.extractor.Extract(a.processed, a.previous, params.PixelThreshold)
	t.Area = moments.Area

	blob, ok := AnalyzeBlob(moments, params.MinArea, a.conf.HorizontalRatio)
	if !ok {
		a.loseTracking()
		return
	}

	t.HasBlob = true
	t.Posture = blob.Posture
	dy, ready := a.tracker.Update(float64(blob.Centroid.Y))
	t.CentroidY = a.tracker.Smoothed()
	t.DY = int(dy)

	if ready {
		ev := Evidence{
			DY:                dy,
			VelocityThreshold: params.VelocityThreshold,
			Posture:           blob.Posture,
		}
		if a.validator.Evaluate(ev, t.FrameIndex, frame.TimeOn) {
			t.Fall = true
			a.fallDetected()
		}
	}
	t.Counter = a.validator.Counter()
}

func (a *Analyzer) loseTracking() {
	a.tracker.Lost()
	a.validator.Lost()
}

func (a *Analyzer) fallDetected() {
	state := a.validator.State()
	a.log.Printf("fall detected at frame %d (%.2fs)", state.FrameIndex, state.TimeOn.Seconds())
	if a.listener == nil {
		return
	}
	a.listener.FallDetected(FallEvent{
		FrameIndex:     state.FrameIndex,
		ElapsedSeconds: state.TimeOn.Seconds(),
		DetectedAt:     state.DetectedAt,
	})
}

// State returns the fall state of the stream so far.
func (a *Analyzer) State() FallState {
	return a.validator.State()
}

// Close releases the image buffers held by the analyzer.
func (a *Analyzer) Close() {
	a.pre.Close()
	a.extractor.Close()
}

// FrameCount returns the number of frames processed.
func (a *Analyzer) FrameCount() int {
	return a.frameIndex
}
