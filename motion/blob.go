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

package motion

import "image"

type Posture int

const (
	PostureUnknown Posture = iota
	Horizontal
	Vertical
)

func (p Posture) String() string {
	switch p {
	case Horizontal:
		return "HORIZONTAL"
	case Vertical:
		return "VERTICAL"
	default:
		return "UNKNOWN"
	}
}

// Blob describes the moving region of a frame.
type Blob struct {
	Centroid image.Point
	Bounds   image.Rectangle
	Area     int
	Posture  Posture
}

// AnalyzeBlob builds a Blob from the moments of a motion mask. It returns
// false when the
// foreground area is not above minArea, meaning nothing is being tracked
// this frame.
//
// The blob is horizontal when width*ratio >= height. A ratio above 1 biases
// the decision towards horizontal so that a person lying on the ground is
// caught even when their motion blob isn't clearly wider than it is tall.
func AnalyzeBlob(moments Moments, minArea int, ratio float64) (Blob, bool) {
	if moments.Area <= minArea || moments.Area == 0 {
		return Blob{}, false
	}

	cx, cy := moments.Centroid()
	bounds := moments.Bounds
	posture := Vertical
	if float64(bounds.Dx())*ratio >= float64(bounds.Dy()) {
		posture = Horizontal
	}

	return Blob{
		Centroid: image.Pt(int(cx), int(cy)),
		Bounds:   bounds,
		Area:     moments.Area,
		Posture:  posture,
	}, true
}
