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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianKernelIsNormalised(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7, 9, 11} {
		k := gaussianKernel(size)
		require.Len(t, k, size)
		var sum float32
		for _, v := range k {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-5, "size %d", size)
		assert.Equal(t, k[0], k[size-1])
	}
}

func TestReflect101(t *testing.T) {
	assert.Equal(t, 1, reflect101(-1, 5))
	assert.Equal(t, 2, reflect101(-2, 5))
	assert.Equal(t, 3, reflect101(5, 5))
	assert.Equal(t, 2, reflect101(6, 5))
	assert.Equal(t, 4, reflect101(4, 5))
	assert.Equal(t, 0, reflect101(3, 1))
}

// padReflect grows f to w x h, filling the new pixels by reflection.
func padReflect(f *Frame, w, h int) *Frame {
	out := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, f.At(reflect101(x, f.Width), reflect101(y, f.Height)))
		}
	}
	return out
}

func TestEqualisationPadsPartialTiles(t *testing.T) {
	f := NewFrame(20, 12)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, uint8((x*37+y*11)%64))
		}
	}
	padded := padReflect(f, 24, 16)

	p := newFilters()
	p.equalize(f, 2)
	p.equalize(padded, 2)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			require.Equal(t, padded.At(x, y), f.At(x, y), "pixel %d,%d", x, y)
		}
	}
}
