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

package main

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/fall-detector/motion"
	"github.com/TheCacophonyProject/fall-detector/source"
	"github.com/TheCacophonyProject/fall-detector/telemetry"
)

const framesPerSdNotify = 5

// detector pulls frames from a source through an analyzer until the source
// runs out or the context is cancelled.
type detector struct {
	src      source.Source
	analyzer *motion.Analyzer
	recorder *telemetry.Recorder
	sdNotify func(state string)

	mu     sync.Mutex
	latest *motion.Frame
	last   motion.Telemetry
	state  motion.FallState
	frames int
}

func newDetector(src source.Source, analyzer *motion.Analyzer, recorder *telemetry.Recorder) *detector {
	return &detector{
		src:      src,
		analyzer: analyzer,
		recorder: recorder,
		sdNotify: func(string) {},
		latest:   new(motion.Frame),
	}
}

// run returns nil when the source is exhausted or ctx is cancelled.
func (d *detector) run(ctx context.Context) error {
	fps := d.src.FPS()
	logFirstMin := max(int(15*fps), 1)
	logInterval := max(int(5*60*fps), 1)

	frame := new(motion.Frame)
	notifyCount := 0
	for {
		select {
		case <-ctx.Done():
			log.Print("stopping, no more frames will be read")
			return nil
		default:
		}

		err := d.src.Next(frame)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading frame")
		}

		t := d.analyzer.Process(frame)
		d.recorder.Record(t)
		totalFrames := d.update(frame, t)

		if totalFrames%logFirstMin == 0 && float64(totalFrames) <= 60*fps ||
			totalFrames%logInterval == 0 {
			log.Printf("%d frames analysed", totalFrames)
		}

		if notifyCount++; notifyCount >= framesPerSdNotify {
			d.sdNotify("WATCHDOG=1")
			notifyCount = 0
		}
	}
}

func (d *detector) update(frame *motion.Frame, t motion.Telemetry) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest.Copy(frame)
	d.last = t
	d.state = d.analyzer.State()
	d.frames++
	return d.frames
}

// status is a snapshot of the detector state that is safe to use from
// other goroutines.
type status struct {
	Frames    int
	Mode      motion.LightMode
	Fall      bool
	FallFrame int
}

func (d *detector) status() status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return status{
		Frames:    d.frames,
		Mode:      d.last.Mode,
		Fall:      d.state.Detected,
		FallFrame: d.state.FrameIndex,
	}
}

// recentFrame returns a copy of the most recently read frame, or nil.
func (d *detector) recentFrame() *motion.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frames == 0 {
		return nil
	}
	return d.latest.Clone()
}
