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

package telemetry

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Stats keeps running statistics for named integer series.
type Stats struct {
	values map[string]*Value
}

func NewStats() *Stats {
	return &Stats{
		values: make(map[string]*Value),
	}
}

func (s *Stats) Update(name string, x int) {
	v := s.values[name]
	if v == nil {
		v = newValue()
		s.values[name] = v
	}
	v.update(x)
}

// Get returns the statistics for name, or nil if nothing was recorded.
func (s *Stats) Get(name string) *Value {
	return s.values[name]
}

func (s *Stats) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Stats) Reset() {
	for _, v := range s.values {
		v.reset()
	}
}

// String takes a format string and generates a string representation of
// the tracked values. A format string looks like "foo:min bar:all" where
// foo and bar are series names and min and all are output formats.
// Available formats are "n", "min", "max", "avg", "all".
func (s *Stats) String(format string) string {
	var out []string
	for _, field := range strings.Fields(format) {
		parts := strings.Split(field, ":")
		if len(parts) != 2 {
			continue
		}
		name, style := parts[0], parts[1]
		if v := s.values[name]; v != nil && v.N > 0 {
			out = append(out, fmt.Sprintf("%s: %s", name, v.format(style)))
		}
	}
	return strings.Join(out, "; ")
}

type Value struct {
	N   int
	Min int
	Max int
	Avg float64
}

func newValue() *Value {
	v := new(Value)
	v.reset()
	return v
}

func (v *Value) reset() {
	v.N = 0
	v.Max = math.MinInt32
	v.Min = math.MaxInt32
	v.Avg = 0
}

func (v *Value) update(x int) {
	v.N++
	if x > v.Max {
		v.Max = x
	}
	if x < v.Min {
		v.Min = x
	}
	// Cumulative moving average
	v.Avg = v.Avg + ((float64(x) - v.Avg) / float64(v.N))
}

func (v *Value) format(style string) string {
	switch style {
	case "n":
		return fmt.Sprint(v.N)
	case "min":
		return fmt.Sprint(v.Min) + "(min)"
	case "max":
		return fmt.Sprint(v.Max) + "(max)"
	case "avg":
		return fmt.Sprintf("%.2f(avg)", v.Avg)
	case "all":
		return fmt.Sprintf("%d -> %d (avg: %.2f)", v.Min, v.Max, v.Avg)
	default:
		return "???"
	}
}
