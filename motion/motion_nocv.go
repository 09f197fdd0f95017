//go:build !withcv

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

// morphology is the pure Go differencing and opening.
type morphology struct {
	tmp Mask
}

func newMorphology() morphology {
	return morphology{}
}

func (m *morphology) close() {}

func (m *morphology) extract(cur, prev *Frame, threshold uint8, mask *Mask) Moments {
	m.tmp.resize(mask.Width, mask.Height)
	thresholdDiffFrames(cur, prev, threshold, mask)
	erode(mask, &m.tmp)
	dilate(mask, &m.tmp)
	return maskMoments(mask)
}

func thresholdDiffFrames(a, b *Frame, threshold uint8, out *Mask) {
	for i, v := range a.Pix {
		out.Pix[i] = absDiff(v, b.Pix[i]) > threshold
	}
}

func absDiff(a, b uint8) uint8 {
	if a < b {
		return b - a
	}
	return a - b
}

// erode keeps a pixel only if every pixel under the structuring element is
// set. Samples outside the image don't count against a pixel.
func erode(m, tmp *Mask) {
	morph(m, tmp, true)
}

// dilate sets a pixel if any pixel under the structuring element is set.
func dilate(m, tmp *Mask) {
	morph(m, tmp, false)
}

// morph runs a separable pass of a square structuring element, first along
// rows into tmp and then along columns back into m. Samples outside the image
// are skipped.
func morph(m, tmp *Mask, erosion bool) {
	w, h := m.Width, m.Height
	r := openingSize / 2

	for y := 0; y < h; y++ {
		row := m.Pix[y*w : (y+1)*w]
		out := tmp.Pix[y*w : (y+1)*w]
		for x := range row {
			out[x] = fold(row[max(x-r, 0):min(x+r, w-1)+1], erosion)
		}
	}

	for y := 0; y < h; y++ {
		y0, y1 := max(y-r, 0), min(y+r, h-1)
		for x := 0; x < w; x++ {
			v := erosion
			for yy := y0; yy <= y1; yy++ {
				if tmp.Pix[yy*w+x] != erosion {
					v = !erosion
					break
				}
			}
			m.Pix[y*w+x] = v
		}
	}
}

// fold is AND over the samples for erosion and OR for dilation.
func fold(samples []bool, erosion bool) bool {
	for _, v := range samples {
		if v != erosion {
			return !erosion
		}
	}
	return erosion
}
