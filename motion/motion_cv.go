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
	"math"

	"gocv.io/x/gocv"
)

// morphology runs the differencing and opening through OpenCV.
type morphology struct {
	kernel gocv.Mat
	diff   gocv.Mat
	opened gocv.Mat
}

func newMorphology() morphology {
	return morphology{
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(openingSize, openingSize)),
		diff:   gocv.NewMat(),
		opened: gocv.NewMat(),
	}
}

func (m *morphology) close() {
	m.kernel.Close()
	m.diff.Close()
	m.opened.Close()
}

func (m *morphology) extract(cur, prev *Frame, threshold uint8, mask *Mask) Moments {
	a, err := frameMat(cur)
	if err != nil {
		log.Printf("motion: %v", err)
		clear(mask.Pix)
		return Moments{}
	}
	defer a.Close()
	b, err := frameMat(prev)
	if err != nil {
		log.Printf("motion: %v", err)
		clear(mask.Pix)
		return Moments{}
	}
	defer b.Close()

	gocv.AbsDiff(a, b, &m.diff)
	gocv.Threshold(m.diff, &m.diff, float32(threshold), 255, gocv.ThresholdBinary)
	gocv.MorphologyEx(m.diff, &m.opened, gocv.MorphOpen, m.kernel)

	for i, v := range m.opened.ToBytes() {
		mask.Pix[i] = v != 0
	}
	return m.moments()
}

// moments reads the area and centroid sums from the image moments of the
// opened mask and the bounding box from its outer contours.
func (m *morphology) moments() Moments {
	mo := gocv.Moments(m.opened, true)
	shape := Moments{
		Area: int(math.Round(mo["m00"])),
		SumX: int64(math.Round(mo["m10"])),
		SumY: int64(math.Round(mo["m01"])),
	}
	if shape.Area == 0 {
		return shape
	}

	contours := gocv.FindContours(m.opened, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	for i := 0; i < contours.Size(); i++ {
		shape.Bounds = shape.Bounds.Union(gocv.BoundingRect(contours.At(i)))
	}
	return shape
}
