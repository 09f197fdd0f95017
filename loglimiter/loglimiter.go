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

package loglimiter

import (
	"fmt"
	"log"
	"time"
)

// New returns a LogLimiter which suppresses a message that repeats within
// interval of the last time it was logged.
func New(interval time.Duration) *LogLimiter {
	return NewWithPrefix(interval, "")
}

// NewWithPrefix is like New but every message is prefixed with prefix.
func NewWithPrefix(interval time.Duration, prefix string) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		prefix:   prefix,
		nowFunc:  time.Now,
		output:   log.Print,
	}
}

type LogLimiter struct {
	interval      time.Duration
	prefix        string
	nowFunc       func() time.Time
	output        func(...interface{})
	previousEntry string
	previousTime  time.Time
	suppressed    int
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	now := limiter.nowFunc()
	if now.Sub(limiter.previousTime) < limiter.interval && s == limiter.previousEntry {
		limiter.suppressed++
		return
	}

	if limiter.suppressed > 0 && s == limiter.previousEntry {
		limiter.output(fmt.Sprintf("%s%s (repeated %d times)", limiter.prefix, s, limiter.suppressed+1))
	} else {
		limiter.output(limiter.prefix + s)
	}
	limiter.previousTime = now
	limiter.previousEntry = s
	limiter.suppressed = 0
}

// Suppressed returns how many times the last message was dropped since it
// was last logged.
func (limiter *LogLimiter) Suppressed() int {
	return limiter.suppressed
}
