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

// Package alert delivers confirmed falls to the outside world.
package alert

import (
	"context"

	"github.com/TheCacophonyProject/fall-detector/motion"
)

// Alert is the payload sent to every sink. Frame is the index of the frame
// the fall was confirmed on and Time the seconds since the start of the
// stream.
type Alert struct {
	Frame  int     `json:"frame"`
	Time   float64 `json:"time"`
	Source string  `json:"source"`
}

func FromEvent(e motion.FallEvent, source string) Alert {
	return Alert{
		Frame:  e.FrameIndex,
		Time:   e.ElapsedSeconds,
		Source: source,
	}
}

// Notifier is an alert sink.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(ctx context.Context, a Alert) error

func (f NotifierFunc) Notify(ctx context.Context, a Alert) error {
	return f(ctx, a)
}
