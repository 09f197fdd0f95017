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

package alert

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Multi sends each alert to every notifier in turn. A failing notifier
// doesn't stop the others from being tried.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, a Alert) error {
	var failures []string
	for _, n := range m {
		if err := n.Notify(ctx, a); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return errors.New(strings.Join(failures, "; "))
	}
	return nil
}

// Close closes every notifier that holds resources.
func (m Multi) Close() {
	for _, n := range m {
		if c, ok := n.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
