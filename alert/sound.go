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
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/TheCacophonyProject/window"
	"github.com/pkg/errors"
)

// activeWindow reports whether the current time is inside a window.
type activeWindow interface {
	Active() bool
}

// SoundNotifier plays an audio file through an external player. When a
// window is configured the sound is only played inside it.
type SoundNotifier struct {
	player string
	args   []string
	file   string
	window activeWindow
	run    func(ctx context.Context, name string, args ...string) error
	mu     sync.Mutex
}

func NewSoundNotifier(conf SoundConfig) (*SoundNotifier, error) {
	n := &SoundNotifier{
		player: conf.Player,
		args:   conf.PlayerArgs,
		file:   conf.File,
		run:    runCommand,
	}
	if conf.WindowStart != "" || conf.WindowEnd != "" {
		w, err := window.New(conf.WindowStart, conf.WindowEnd, conf.Latitude, conf.Longitude)
		if err != nil {
			return nil, errors.Wrap(err, "sound window")
		}
		n.window = w
	}
	return n, nil
}

func (n *SoundNotifier) Notify(ctx context.Context, a Alert) error {
	if n.window != nil && !n.window.Active() {
		log.Print("fall alert outside of sound window, not playing")
		return nil
	}
	if _, err := os.Stat(n.file); err != nil {
		return errors.Wrap(err, "alert sound")
	}

	// One sound at a time.
	n.mu.Lock()
	defer n.mu.Unlock()
	args := append(append([]string{}, n.args...), n.file)
	if err := n.run(ctx, n.player, args...); err != nil {
		return errors.Wrapf(err, "playing %s", n.file)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
