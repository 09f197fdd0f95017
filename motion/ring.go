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
	"gonum.org/v1/gonum/stat"
)

// Ring stores the last n values pushed to it. Once full, pushing a value
// evicts the oldest one.
type Ring struct {
	values  []float64
	ordered []float64
	start   int
	count   int
}

func NewRing(size int) *Ring {
	return &Ring{
		values:  make([]float64, size),
		ordered: make([]float64, size),
	}
}

func (r *Ring) Cap() int {
	return len(r.values)
}

func (r *Ring) Len() int {
	return r.count
}

func (r *Ring) Full() bool {
	return r.count == len(r.values)
}

// Push appends v as the newest value.
func (r *Ring) Push(v float64) {
	if len(r.values) == 0 {
		return
	}
	if r.Full() {
		r.values[r.start] = v
		r.start = r.nextIndexAfter(r.start)
		return
	}
	r.values[(r.start+r.count)%len(r.values)] = v
	r.count++
}

// PopOldest removes the oldest value. It returns false if the ring is empty.
func (r *Ring) PopOldest() (float64, bool) {
	if r.count == 0 {
		return 0, false
	}
	v := r.values[r.start]
	r.start = r.nextIndexAfter(r.start)
	r.count--
	if r.count == 0 {
		r.start = 0
	}
	return v, true
}

func (r *Ring) Clear() {
	r.start = 0
	r.count = 0
}

// At returns the i'th value where 0 is the oldest.
func (r *Ring) At(i int) float64 {
	return r.values[(r.start+i)%len(r.values)]
}

func (r *Ring) Oldest() float64 {
	return r.At(0)
}

func (r *Ring) Newest() float64 {
	return r.At(r.count - 1)
}

// History returns the stored values from oldest to newest.
// Note: The returned slice will be rewritten next time History is called.
func (r *Ring) History() []float64 {
	for i := 0; i < r.count; i++ {
		r.ordered[i] = r.At(i)
	}
	return r.ordered[:r.count]
}

// Mean returns the arithmetic mean of the stored values, or 0 when empty.
func (r *Ring) Mean() float64 {
	if r.count == 0 {
		return 0
	}
	return stat.Mean(r.History(), nil)
}

func (r *Ring) nextIndexAfter(index int) int {
	return (index + 1) % len(r.values)
}
