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

// Package source reads frames for the analyzer from video files, cameras,
// CPTV recordings and directories of images.
package source

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/fall-detector/motion"
)

const defaultFPS = 30

// Source produces grayscale frames in capture order. Next returns io.EOF
// once there are no more frames.
type Source interface {
	Next(frame *motion.Frame) error
	FPS() float64
	Close() error
}

type Config struct {
	// Rotate turns every frame 90 degrees clockwise as it is read.
	Rotate bool `yaml:"rotate"`

	// FallbackFPS is used when the source doesn't report a frame rate.
	FallbackFPS float64 `yaml:"fallback-fps"`

	// ThermalMin and ThermalMax are the raw CPTV readings mapped to black
	// and white. When unset the range of the first frame is used for the
	// whole recording.
	ThermalMin uint16 `yaml:"thermal-min"`
	ThermalMax uint16 `yaml:"thermal-max"`
}

func DefaultConfig() Config {
	return Config{
		FallbackFPS: defaultFPS,
	}
}

// Open picks a source based on name: a number is a camera device, a
// directory is an image sequence, a .cptv file is a thermal recording and
// anything else is treated as a video file.
func Open(name string, conf Config) (Source, error) {
	if id, err := strconv.Atoi(name); err == nil {
		return OpenDevice(id, conf)
	}
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening source")
	}
	if info.IsDir() {
		return OpenDir(name, conf)
	}
	if strings.EqualFold(filepath.Ext(name), ".cptv") {
		return OpenCPTV(name, conf)
	}
	return OpenVideo(name, conf)
}

func (conf *Config) fps(reported float64) float64 {
	if reported > 0 {
		return reported
	}
	if conf.FallbackFPS > 0 {
		return conf.FallbackFPS
	}
	return defaultFPS
}

// ingest finishes a frame read from a source: rotation and timing.
func (conf *Config) ingest(frame *motion.Frame, index int, fps float64) {
	if conf.Rotate {
		frame.Copy(frame.Rotate90())
	}
	frame.TimeOn = frameTime(index, fps)
}

func frameTime(index int, fps float64) time.Duration {
	return time.Duration(float64(index) / fps * float64(time.Second))
}
