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

package main

import (
	"errors"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	snapshotName          = "still.png"
	allowedSnapshotPeriod = 500 * time.Millisecond
)

// snapshotter saves the detector's most recent frame as a PNG in dir.
type snapshotter struct {
	dir      string
	detector *detector
	now      func() time.Time

	mu       sync.Mutex
	previous time.Time
}

func newSnapshotter(dir string, d *detector) *snapshotter {
	return &snapshotter{
		dir:      dir,
		detector: d,
		now:      time.Now,
	}
}

// take writes still.png. Requests closer together than
// allowedSnapshotPeriod are ignored.
func (s *snapshotter) take() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.now().Sub(s.previous) < allowedSnapshotPeriod {
		return nil
	}

	f := s.detector.recentFrame()
	if f == nil {
		return errors.New("no frames yet")
	}
	img := &image.Gray{
		Pix:    f.Pix,
		Stride: f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}

	out, err := os.Create(filepath.Join(s.dir, snapshotName))
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return err
	}

	// only successful snapshots count towards the rate limit
	s.previous = s.now()
	return nil
}

func (s *snapshotter) delete() {
	if err := os.Remove(filepath.Join(s.dir, snapshotName)); err != nil && !os.IsNotExist(err) {
		log.Printf("error deleting snapshot image: %v", err)
	}
}
