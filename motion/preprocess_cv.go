//go:build withcv

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
	"log"

	"gocv.io/x/gocv"
)

// filters runs the blur and equalisation through OpenCV.
type filters struct {
	dst      gocv.Mat
	clahe    gocv.CLAHE
	clip     float64
	hasCLAHE bool
}

func newFilters() filters {
	return filters{
		dst: gocv.NewMat(),
	}
}

func (p *filters) close() {
	if p.hasCLAHE {
		p.clahe.Close()
		p.hasCLAHE = false
	}
	p.dst.Close()
}

func (p *filters) blur(src *Frame, size int, out *Frame) {
	if size <= 1 {
		copy(out.Pix, src.Pix)
		return
	}
	in, err := frameMat(src)
	if err != nil {
		log.Printf("blur: %v", err)
		copy(out.Pix, src.Pix)
		return
	}
	defer in.Close()

	gocv.GaussianBlur(in, &p.dst, image.Pt(size, size), 0, 0, gocv.BorderReflect101)
	copy(out.Pix, p.dst.ToBytes())
}

// equalize applies CLAHE over an 8x8 tile grid in place. The CLAHE object is
// rebuilt only when the clip limit changes.
func (p *filters) equalize(f *Frame, clipLimit float64) {
	if !p.hasCLAHE || p.clip != clipLimit {
		if p.hasCLAHE {
			p.clahe.Close()
		}
		p.clahe = gocv.NewCLAHEWithParams(clipLimit, image.Pt(claheTiles, claheTiles))
		p.clip = clipLimit
		p.hasCLAHE = true
	}
	in, err := frameMat(f)
	if err != nil {
		log.Printf("equalize: %v", err)
		return
	}
	defer in.Close()

	p.clahe.Apply(in, &p.dst)
	copy(f.Pix, p.dst.ToBytes())
}

// frameMat wraps the pixels of f in a single channel Mat.
func frameMat(f *Frame) (gocv.Mat, error) {
	return gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8U, f.Pix)
}
