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

package source

import (
	"os"
	"time"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/TheCacophonyProject/go-cptv/cptvframe"
	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/fall-detector/motion"
)

// cptvSource plays a thermal recording. Readings are mapped to 8 bits
// through one window for the whole recording so brightness stays
// comparable between frames.
type cptvSource struct {
	conf   Config
	file   *os.File
	reader *cptv.Reader
	raw    *cptvframe.Frame
	window thermalWindow
	first  bool
	start  time.Duration
}

func OpenCPTV(name string, conf Config) (Source, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening cptv file")
	}
	reader, err := cptv.NewReader(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "reading cptv header of %s", name)
	}
	return &cptvSource{
		conf:   conf,
		file:   file,
		reader: reader,
		raw:    cptvframe.NewFrame(reader),
		window: thermalWindow{lo: conf.ThermalMin, hi: conf.ThermalMax},
		first:  true,
	}, nil
}

func (s *cptvSource) Next(frame *motion.Frame) error {
	if err := s.reader.ReadFrame(s.raw); err != nil {
		return err
	}
	if !s.window.valid() {
		s.window = windowOf(s.raw.Pix)
	}
	s.window.normalise(s.raw.Pix, frame)

	if s.conf.Rotate {
		frame.Copy(frame.Rotate90())
	}
	// Thermal frames carry their own timing, relative to camera power on.
	if s.first {
		s.start = s.raw.Status.TimeOn
		s.first = false
	}
	frame.TimeOn = s.raw.Status.TimeOn - s.start
	return nil
}

func (s *cptvSource) FPS() float64 {
	return s.conf.fps(float64(s.reader.FPS()))
}

func (s *cptvSource) Close() error {
	return s.file.Close()
}

// thermalWindow is the range of raw readings spread over 0 - 255.
// Readings outside it are clamped.
type thermalWindow struct {
	lo, hi uint16
}

func (w thermalWindow) valid() bool {
	return w.hi > w.lo
}

// windowOf takes the range of the readings in pix. A flat frame gets a
// window one reading wide.
func windowOf(pix [][]uint16) thermalWindow {
	w := thermalWindow{lo: 0xffff}
	for _, row := range pix {
		for _, v := range row {
			w.lo = min(w.lo, v)
			w.hi = max(w.hi, v)
		}
	}
	if w.hi <= w.lo {
		if w.lo == 0xffff {
			w.lo--
		}
		w.hi = w.lo + 1
	}
	return w
}

func (w thermalWindow) normalise(pix [][]uint16, frame *motion.Frame) {
	height := len(pix)
	width := 0
	if height > 0 {
		width = len(pix[0])
	}
	frame.Resize(width, height)

	span := float64(w.hi) - float64(w.lo)
	i := 0
	for _, row := range pix {
		for _, v := range row {
			v = min(max(v, w.lo), w.hi)
			frame.Pix[i] = uint8(float64(v-w.lo)*255/span + 0.5)
			i++
		}
	}
}
