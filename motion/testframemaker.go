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
	"time"
)

const testFrameInterval = time.Second / 30

// TestFrameMaker plays synthetic scenes through an Analyzer: a flat
// background with an optional bright rectangle standing in for a person.
type TestFrameMaker struct {
	analyzer      *Analyzer
	Width         int
	Height        int
	BackgroundVal uint8
	BlobVal       uint8
	Blob          image.Rectangle
	FallStep      int
	now           time.Duration
	Results       []Telemetry
}

func MakeTestFrameMaker(analyzer *Analyzer) *TestFrameMaker {
	return &TestFrameMaker{
		analyzer:      analyzer,
		Width:         160,
		Height:        240,
		BackgroundVal: 100,
		BlobVal:       250,
		Blob:          image.Rect(30, 20, 130, 40),
		FallStep:      10,
	}
}

// AddBackgroundFrames plays frames with nothing but background.
func (tfm *TestFrameMaker) AddBackgroundFrames(frames int) *TestFrameMaker {
	for i := 0; i < frames; i++ {
		tfm.PlayFrame(tfm.makeFrame(false))
	}
	return tfm
}

// AddStaticBlobFrames plays frames with the blob standing still.
func (tfm *TestFrameMaker) AddStaticBlobFrames(frames int) *TestFrameMaker {
	for i := 0; i < frames; i++ {
		tfm.PlayFrame(tfm.makeFrame(true))
	}
	return tfm
}

// AddFallingBlobFrames moves the blob down by FallStep pixels before each
// frame.
func (tfm *TestFrameMaker) AddFallingBlobFrames(frames int) *TestFrameMaker {
	for i := 0; i < frames; i++ {
		tfm.Blob = tfm.Blob.Add(image.Pt(0, tfm.FallStep))
		tfm.PlayFrame(tfm.makeFrame(true))
	}
	return tfm
}

func (tfm *TestFrameMaker) PlayFrame(frame *Frame) {
	tfm.Results = append(tfm.Results, tfm.analyzer.Process(frame))
}

// Frames returns the telemetry of every frame played so far.
func (tfm *TestFrameMaker) Frames() []Telemetry {
	return tfm.Results
}

func (tfm *TestFrameMaker) makeFrame(withBlob bool) *Frame {
	frame := NewFrame(tfm.Width, tfm.Height)
	frame.TimeOn = tfm.now
	tfm.now += testFrameInterval
	frame.Fill(tfm.BackgroundVal)

	if withBlob {
		r := tfm.Blob.Intersect(image.Rect(0, 0, tfm.Width, tfm.Height))
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				frame.Set(x, y, tfm.BlobVal)
			}
		}
	}
	return frame
}
