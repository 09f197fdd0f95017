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

// Package telemetry keeps the per frame output of an analyzer and turns it
// into summaries, plots and result files.
package telemetry

import (
	"github.com/TheCacophonyProject/fall-detector/motion"
)

const (
	summaryFormat = "dy:all area:all brightness:avg tracked:n"

	// DefaultRowLimit keeps ten minutes of rows at 30 fps.
	DefaultRowLimit = 30 * 60 * 10
)

// Recorder collects the telemetry of one stream. Only the most recent
// rows are kept; the stats cover every recorded frame.
type Recorder struct {
	rows  []motion.Telemetry
	head  int
	limit int
	total int
	stats *Stats
	fall  *motion.FallEvent
	next  motion.FallListener
}

// NewRecorder returns a recorder keeping DefaultRowLimit rows. Fall
// events are passed on to next, which may be nil.
func NewRecorder(next motion.FallListener) *Recorder {
	return NewBoundedRecorder(next, DefaultRowLimit)
}

func NewBoundedRecorder(next motion.FallListener, limit int) *Recorder {
	return &Recorder{
		limit: max(limit, 1),
		stats: NewStats(),
		next:  next,
	}
}

func (r *Recorder) Record(t motion.Telemetry) {
	if len(r.rows) < r.limit {
		r.rows = append(r.rows, t)
	} else {
		r.rows[r.head] = t
		r.head = (r.head + 1) % r.limit
	}
	r.total++

	r.stats.Update("brightness", int(t.Brightness))
	if !t.HasBlob {
		return
	}
	r.stats.Update("tracked", 1)
	r.stats.Update("area", t.Area)
	r.stats.Update("dy", t.DY)
}

func (r *Recorder) FallDetected(e motion.FallEvent) {
	if r.fall == nil {
		r.fall = &e
	}
	if r.next != nil {
		r.next.FallDetected(e)
	}
}

// Rows returns the kept rows, oldest first.
func (r *Recorder) Rows() []motion.Telemetry {
	rows := make([]motion.Telemetry, 0, len(r.rows))
	rows = append(rows, r.rows[r.head:]...)
	return append(rows, r.rows[:r.head]...)
}

// Frames is the number of frames recorded, including dropped rows.
func (r *Recorder) Frames() int {
	return r.total
}

func (r *Recorder) Stats() *Stats {
	return r.stats
}

// Fall returns the recorded fall, or nil.
func (r *Recorder) Fall() *motion.FallEvent {
	return r.fall
}

// Summary describes the recorded dy, area and brightness values.
func (r *Recorder) Summary() string {
	return r.stats.String(summaryFormat)
}
