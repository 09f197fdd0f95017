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
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteResult writes a short report of the outcome for source.
func (r *Recorder) WriteResult(w io.Writer, source string) error {
	var err error
	if r.fall != nil {
		_, err = fmt.Fprintf(w, "Fall detected in %s at frame %d (%.2f s)\n",
			source, r.fall.FrameIndex, r.fall.ElapsedSeconds)
	} else {
		_, err = fmt.Fprintf(w, "No fall detected in %s\n", source)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Frames analysed: %d\n", r.total)
	if err != nil {
		return err
	}
	if summary := r.Summary(); summary != "" {
		_, err = fmt.Fprintf(w, "%s\n", summary)
	}
	return err
}

// WriteResultFile writes the report to path.
func (r *Recorder) WriteResultFile(path, source string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating result file")
	}
	if err := r.WriteResult(f, source); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
