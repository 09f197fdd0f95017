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

// FallState records whether, and when, a fall was confirmed.
type FallState struct {
	Detected   bool
	FrameIndex int
	TimeOn     time.Duration
	DetectedAt time.Time
}

// Evidence is what a single frame contributes towards a fall decision.
type Evidence struct {
	DY                float64
	VelocityThreshold float64
	Posture           Posture
}

// FallValidator debounces per frame evidence. Positive evidence bumps a
// counter, anything else decays it by one so that a single misread frame in
// the middle of a fall doesn't throw the accumulated confidence away. Once
// the counter reaches the required number of validations the fall is
// confirmed, which happens at most once.
type FallValidator struct {
	required int
	maxDY    float64
	counter  int
	state    FallState
	nowFunc  func() time.Time
}

func NewFallValidator(required int, maxDY float64) *FallValidator {
	return &FallValidator{
		required: required,
		maxDY:    maxDY,
		nowFunc:  time.Now,
	}
}

// IsPositive reports whether the evidence looks like a fall: fast enough, not
// implausibly fast, and lying down.
func (v *FallValidator) IsPositive(ev Evidence) bool {
	return ev.DY > ev.VelocityThreshold && ev.DY < v.maxDY && ev.Posture == Horizontal
}

// Evaluate applies one frame of evidence. It returns true only on the frame
// where the fall is confirmed.
func (v *FallValidator) Evaluate(ev Evidence, frameIndex int, timeOn time.Duration) bool {
	if v.IsPositive(ev) {
		v.counter++
	} else if v.counter > 0 {
		v.counter--
	}

	if v.counter < v.required || v.state.Detected {
		return false
	}
	v.state = FallState{
		Detected:   true,
		FrameIndex: frameIndex,
		TimeOn:     timeOn,
		DetectedAt: v.nowFunc(),
	}
	return true
}

// Lost resets the counter when tracking is lost.
func (v *FallValidator) Lost() {
	v.counter = 0
}

func (v *FallValidator) Counter() int {
	return v.counter
}

func (v *FallValidator) State() FallState {
	return v.state
}
