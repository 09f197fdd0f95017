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

package harness

import (
	"fmt"
	"io"
	"strings"
)

const nameWidth = 35

func verdict(fall bool) string {
	if fall {
		return "FALL"
	}
	return "NOTHING"
}

// WriteReport prints one line per result followed by the summary.
func WriteReport(w io.Writer, results []Result, s Summary) {
	rule := strings.Repeat("-", 60)
	for _, res := range results {
		name := res.File
		if len(name) > nameWidth {
			name = name[:nameWidth]
		}
		var status string
		switch res.Outcome {
		case OK:
			status = "OK"
		case Mismatch:
			status = fmt.Sprintf("ERROR (expected: %s | got: %s)", verdict(res.ExpectFall), verdict(res.Detected))
		case Missing:
			status = "FILE NOT FOUND"
		default:
			status = fmt.Sprintf("FAILED (%v)", res.Err)
		}
		fmt.Fprintf(w, "[%-*s] : %s\n", nameWidth, name, status)
	}

	fmt.Fprintln(w, rule)
	if s.Missing > 0 {
		fmt.Fprintf(w, "WARNING: %d files were not found.\n", s.Missing)
	}
	fmt.Fprintf(w, "Total time: %.2f seconds\n", s.Duration.Seconds())
	fmt.Fprintf(w, "FINAL RESULT: %.1f%% success (%d/%d)\n", s.Score(), s.OK, s.Total)
	fmt.Fprintln(w, strings.Repeat("=", 60))
}
