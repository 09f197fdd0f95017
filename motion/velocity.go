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

import "math"

// jitterEpsilon is the smallest frame to frame change of the smoothed
// centroid that is treated as movement.
const jitterEpsilon = 3.0

// VelocityTracker follows the vertical position of the motion centroid and
// derives a windowed vertical velocity (dy) from it. Positive dy is downwards
// in image space.
type VelocityTracker struct {
	stride    int
	smoothing *Ring
	history   *Ring
	smoothed  float64
}

func NewVelocityTracker(stride, smoothingWindow int) *VelocityTracker {
	return &VelocityTracker{
		stride:    stride,
		smoothing: NewRing(smoothingWindow),
		history:   NewRing(stride + 1),
	}
}

// Update adds the raw centroid y of the current frame. It returns dy and
// whether enough history was available to compute it; dy is 0 when not.
func (vt *VelocityTracker) Update(y float64) (float64, bool) {
	vt.smoothing.Push(y)
	vt.smoothed = vt.smoothing.Mean()
	vt.history.Push(vt.smoothed)

	if vt.history.Len() <= vt.stride {
		return 0, false
	}

	newest := vt.history.Newest()
	if math.Abs(newest-vt.history.At(vt.history.Len()-2)) < jitterEpsilon {
		return 0, true
	}
	return newest - vt.history.Oldest(), true
}

// Lost is called for frames where no blob was found. History decays by one
// sample while smoothing starts again from scratch.
func (vt *VelocityTracker) Lost() {
	vt.history.PopOldest()
	vt.smoothing.Clear()
}

// Smoothed returns the most recent smoothed centroid.
func (vt *VelocityTracker) Smoothed() float64 {
	return vt.smoothed
}

func (vt *VelocityTracker) HistoryLen() int {
	return vt.history.Len()
}

func (vt *VelocityTracker) SmoothingLen() int {
	return vt.smoothing.Len()
}
