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
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/fall-detector/motion"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// dirSource plays the images in a directory, in name order, as frames.
type dirSource struct {
	conf  Config
	files []string
	index int
}

func OpenDir(dir string, conf Config) (Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading image directory %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no images found in %s", dir)
	}
	sort.Strings(files)
	return &dirSource{conf: conf, files: files}, nil
}

func (s *dirSource) Next(frame *motion.Frame) error {
	if s.index >= len(s.files) {
		return io.EOF
	}
	name := s.files[s.index]
	img, err := loadImage(name)
	if err != nil {
		return err
	}
	toGray(img, frame)
	s.conf.ingest(frame, s.index, s.FPS())
	s.index++
	return nil
}

func (s *dirSource) FPS() float64 {
	return s.conf.fps(0)
}

func (s *dirSource) Close() error {
	return nil
}

func loadImage(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening frame")
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	return img, nil
}

// toGray converts img to 8-bit luma.
func toGray(img image.Image, frame *motion.Frame) {
	b := img.Bounds()
	frame.Resize(b.Dx(), b.Dy())
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(frame.Pix[y*b.Dx():(y+1)*b.Dx()], g.Pix[y*g.Stride:y*g.Stride+b.Dx()])
		}
		return
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			frame.Pix[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			i++
		}
	}
}
