//go:build !withcv

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

import "errors"

// ErrNoVideoSupport is returned for video files and cameras when built
// without OpenCV.
var ErrNoVideoSupport = errors.New("video sources need a build with the withcv tag")

func OpenVideo(name string, conf Config) (Source, error) {
	return nil, ErrNoVideoSupport
}

func OpenDevice(id int, conf Config) (Source, error) {
	return nil, ErrNoVideoSupport
}
