//go:build withcv

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
	"io"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/TheCacophonyProject/fall-detector/motion"
)

// videoSource reads frames through OpenCV, from a file or a camera.
type videoSource struct {
	conf    Config
	capture *gocv.VideoCapture
	img     gocv.Mat
	gray    gocv.Mat
	rotated gocv.Mat
	fps     float64
	index   int
}

func OpenVideo(name string, conf Config) (Source, error) {
	capture, err := gocv.OpenVideoCapture(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening video %s", name)
	}
	return newVideoSource(capture, conf), nil
}

func OpenDevice(id int, conf Config) (Source, error) {
	capture, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, errors.Wrapf(err, "opening camera %d", id)
	}
	return newVideoSource(capture, conf), nil
}

func newVideoSource(capture *gocv.VideoCapture, conf Config) *videoSource {
	return &videoSource{
		conf:    conf,
		capture: capture,
		img:     gocv.NewMat(),
		gray:    gocv.NewMat(),
		rotated: gocv.NewMat(),
		fps:     conf.fps(capture.Get(gocv.VideoCaptureFPS)),
	}
}

func (s *videoSource) Next(frame *motion.Frame) error {
	if ok := s.capture.Read(&s.img); !ok || s.img.Empty() {
		return io.EOF
	}

	src := s.img
	if s.conf.Rotate {
		if err := gocv.Rotate(s.img, &s.rotated, gocv.Rotate90Clockwise); err != nil {
			return errors.Wrap(err, "rotating frame")
		}
		src = s.rotated
	}
	if src.Channels() == 1 {
		src.CopyTo(&s.gray)
	} else if err := gocv.CvtColor(src, &s.gray, gocv.ColorBGRToGray); err != nil {
		return errors.Wrap(err, "converting frame to gray")
	}

	frame.Resize(s.gray.Cols(), s.gray.Rows())
	copy(frame.Pix, s.gray.ToBytes())
	frame.TimeOn = frameTime(s.index, s.fps)
	s.index++
	return nil
}

func (s *videoSource) FPS() float64 {
	return s.fps
}

func (s *videoSource) Close() error {
	s.img.Close()
	s.gray.Close()
	s.rotated.Close()
	return s.capture.Close()
}
