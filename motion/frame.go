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

import "time"

// Frame is a single channel 8-bit image. Pix holds the rows top to bottom,
// Width samples each.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8

	// TimeOn is the time since the start of the stream that the frame was
	// captured.
	TimeOn time.Duration
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

func (f *Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Width+x]
}

func (f *Frame) Set(x, y int, v uint8) {
	f.Pix[y*f.Width+x] = v
}

// Fill sets every sample of the frame to v.
func (f *Frame) Fill(v uint8) {
	for i := range f.Pix {
		f.Pix[i] = v
	}
}

// Resize changes the dimensions of the frame, reusing the sample buffer
// when it is large enough. Sample values are undefined afterwards.
func (f *Frame) Resize(width, height int) {
	n := width * height
	if cap(f.Pix) < n {
		f.Pix = make([]uint8, n)
	}
	f.Pix = f.Pix[:n]
	f.Width = width
	f.Height = height
}

// Copy makes f an exact copy of src.
func (f *Frame) Copy(src *Frame) {
	f.Resize(src.Width, src.Height)
	copy(f.Pix, src.Pix)
	f.TimeOn = src.TimeOn
}

func (f *Frame) Clone() *Frame {
	out := new(Frame)
	out.Copy(f)
	return out
}

func (f *Frame) SameSize(other *Frame) bool {
	return f.Width == other.Width && f.Height == other.Height
}

// Mean returns the arithmetic mean intensity of the frame.
func (f *Frame) Mean() float64 {
	if len(f.Pix) == 0 {
		return 0
	}
	var total uint64
	for _, v := range f.Pix {
		total += uint64(v)
	}
	return float64(total) / float64(len(f.Pix))
}

// Rotate90 returns a copy of the frame rotated 90 degrees clockwise.
func (f *Frame) Rotate90() *Frame {
	out := NewFrame(f.Height, f.Width)
	out.TimeOn = f.TimeOn
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Width : (y+1)*f.Width]
		dx := f.Height - 1 - y
		for x, v := range row {
			out.Pix[x*out.Width+dx] = v
		}
	}
	return out
}
