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

import "image"

// openingSize is the side of the square structuring element used to remove
// speckle from the motion mask.
const openingSize = 5

// Mask is a binary image where true marks a foreground (moving) pixel.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

func (m *Mask) At(x, y int) bool {
	return m.Pix[y*m.Width+x]
}

func (m *Mask) resize(width, height int) {
	n := width * height
	if cap(m.Pix) < n {
		m.Pix = make([]bool, n)
	}
	m.Pix = m.Pix[:n]
	m.Width = width
	m.Height = height
}

// Moments summarise the foreground of a mask: its pixel count, first order
// moments and bounding box.
type Moments struct {
	Area   int
	SumX   int64
	SumY   int64
	Bounds image.Rectangle
}

// Centroid returns the centre of mass of the foreground. It is only
// meaningful when Area > 0.
func (m Moments) Centroid() (float64, float64) {
	if m.Area == 0 {
		return 0, 0
	}
	return float64(m.SumX) / float64(m.Area), float64(m.SumY) / float64(m.Area)
}

// MotionExtractor turns a pair of processed frames into a cleaned up motion
// mask. The mask it returns is overwritten on the next call.
type MotionExtractor struct {
	mask Mask
	morphology
}

func NewMotionExtractor() *MotionExtractor {
	return &MotionExtractor{
		morphology: newMorphology(),
	}
}

// Extract compares cur against prev. Pixels whose absolute difference is
// strictly above threshold are foreground; isolated specks are then removed
// with a morphological opening.
func (e *MotionExtractor) Extract(cur, prev *Frame, threshold uint8) (*Mask, Moments) {
	e.mask.resize(cur.Width, cur.Height)
	if len(e.mask.Pix) == 0 {
		return &e.mask, Moments{}
	}
	return &e.mask, e.extract(cur, prev, threshold, &e.mask)
}

// Close releases the extractor's buffers.
func (e *MotionExtractor) Close() {
	e.morphology.close()
}

func maskMoments(m *Mask) Moments {
	var mo Moments
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if !v {
				continue
			}
			mo.Area++
			mo.SumX += int64(x)
			mo.SumY += int64(y)
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = y
		}
	}
	if mo.Area > 0 {
		mo.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
	}
	return mo
}
