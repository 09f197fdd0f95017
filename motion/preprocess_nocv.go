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

import (
	"math"
)

// filters is the pure Go blur and equalisation, matching OpenCV's
// GaussianBlur and CLAHE with reflect-101 borders.
type filters struct {
	kernels map[int][]float32
	tmp     []float32
	luts    [][256]uint8
}

func newFilters() filters {
	return filters{
		kernels: make(map[int][]float32),
	}
}

func (p *filters) close() {}

// gaussianKernel returns the 1D kernel OpenCV uses for the given size when
// sigma is derived from the size.
func gaussianKernel(size int) []float32 {
	switch size {
	case 1:
		return []float32{1}
	case 3:
		return []float32{0.25, 0.5, 0.25}
	case 5:
		return []float32{0.0625, 0.25, 0.375, 0.25, 0.0625}
	case 7:
		return []float32{0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125}
	}

	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	scale := -0.5 / (sigma * sigma)
	k := make([]float64, size)
	var sum float64
	for i := range k {
		x := float64(i - (size-1)/2)
		k[i] = math.Exp(scale * x * x)
		sum += k[i]
	}
	out := make([]float32, size)
	for i := range k {
		out[i] = float32(k[i] / sum)
	}
	return out
}

// reflect101 maps an out of range index back into [0, n) by mirroring
// around the edge samples (dcb|abcd|cba).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

func (p *filters) blur(src *Frame, size int, out *Frame) {
	if size <= 1 {
		copy(out.Pix, src.Pix)
		return
	}
	kernel, ok := p.kernels[size]
	if !ok {
		kernel = gaussianKernel(size)
		p.kernels[size] = kernel
	}
	radius := size / 2
	w, h := src.Width, src.Height

	if cap(p.tmp) < w*h {
		p.tmp = make([]float32, w*h)
	}
	tmp := p.tmp[:w*h]

	for y := 0; y < h; y++ {
		row := src.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var acc float32
			for k, kv := range kernel {
				acc += kv * float32(row[reflect101(x+k-radius, w)])
			}
			tmp[y*w+x] = acc
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k, kv := range kernel {
				acc += kv * tmp[reflect101(y+k-radius, h)*w+x]
			}
			out.Pix[y*w+x] = saturate(float64(acc))
		}
	}
}

// equalize applies contrast limited adaptive histogram equalisation in place
// using an 8x8 grid of tiles with bilinear interpolation between the tile
// mappings. When the frame doesn't divide into whole tiles it is padded by
// reflection so every tile is the same size.
func (p *filters) equalize(f *Frame, clipLimit float64) {
	w, h := f.Width, f.Height
	if w == 0 || h == 0 {
		return
	}
	tileW := (w + claheTiles - 1) / claheTiles
	tileH := (h + claheTiles - 1) / claheTiles
	tileArea := tileW * tileH

	if cap(p.luts) < claheTiles*claheTiles {
		p.luts = make([][256]uint8, claheTiles*claheTiles)
	}
	luts := p.luts[:claheTiles*claheTiles]

	var hist [256]int
	lutScale := 255.0 / float64(tileArea)
	for ty := 0; ty < claheTiles; ty++ {
		for tx := 0; tx < claheTiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			for i := range hist {
				hist[i] = 0
			}
			for y := y0; y < y0+tileH; y++ {
				row := f.Pix[reflect101(y, h)*w:]
				for x := x0; x < x0+tileW; x++ {
					hist[row[reflect101(x, w)]]++
				}
			}
			clipHistogram(&hist, clipLimit, tileArea)

			sum := 0
			lut := &luts[ty*claheTiles+tx]
			for i, n := range hist {
				sum += n
				lut[i] = saturate(float64(sum) * lutScale)
			}
		}
	}

	for y := 0; y < h; y++ {
		tyf := float64(y)/float64(tileH) - 0.5
		ty1 := int(math.Floor(tyf))
		ty2 := ty1 + 1
		ya := tyf - float64(ty1)
		ty1 = max(ty1, 0)
		ty2 = min(ty2, claheTiles-1)

		for x := 0; x < w; x++ {
			txf := float64(x)/float64(tileW) - 0.5
			tx1 := int(math.Floor(txf))
			tx2 := tx1 + 1
			xa := txf - float64(tx1)
			tx1 = max(tx1, 0)
			tx2 = min(tx2, claheTiles-1)

			v := f.Pix[y*w+x]
			top := float64(luts[ty1*claheTiles+tx1][v])*(1-xa) + float64(luts[ty1*claheTiles+tx2][v])*xa
			bottom := float64(luts[ty2*claheTiles+tx1][v])*(1-xa) + float64(luts[ty2*claheTiles+tx2][v])*xa
			f.Pix[y*w+x] = saturate(top*(1-ya) + bottom*ya)
		}
	}
}

// clipHistogram limits every bin to the clip limit and spreads the excess
// evenly over the histogram.
func clipHistogram(hist *[256]int, clipLimit float64, tileArea int) {
	limit := int(clipLimit * float64(tileArea) / 256)
	if limit < 1 {
		limit = 1
	}

	excess := 0
	for i, n := range hist {
		if n > limit {
			excess += n - limit
			hist[i] = limit
		}
	}

	batch := excess / 256
	residual := excess - batch*256
	for i := range hist {
		hist[i] += batch
	}
	if residual > 0 {
		step := max(256/residual, 1)
		for i := 0; i < 256 && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}
}
