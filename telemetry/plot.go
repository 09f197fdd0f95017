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
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	centroidColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	velocityColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	fallColor     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// SavePlot writes a PNG of the tracked vertical centroid and dy against
// frame index. The y axis is inverted so that down in the plot is down in
// the image. Nothing is written when no blob was ever tracked.
func (r *Recorder) SavePlot(path string) (bool, error) {
	rows := r.Rows()
	var centroid, velocity plotter.XYs
	for _, t := range rows {
		if !t.HasBlob {
			continue
		}
		x := float64(t.FrameIndex)
		centroid = append(centroid, plotter.XY{X: x, Y: t.CentroidY})
		velocity = append(velocity, plotter.XY{X: x, Y: float64(t.DY)})
	}
	if len(centroid) == 0 {
		return false, nil
	}

	p := plot.New()
	p.Title.Text = "Vertical centroid"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	centroidLine, err := plotter.NewLine(centroid)
	if err != nil {
		return false, errors.Wrap(err, "centroid line")
	}
	centroidLine.Color = centroidColor
	centroidLine.Width = vg.Points(1)
	p.Add(centroidLine)
	p.Legend.Add("centroid y", centroidLine)

	velocityLine, err := plotter.NewLine(velocity)
	if err != nil {
		return false, errors.Wrap(err, "dy line")
	}
	velocityLine.Color = velocityColor
	velocityLine.Width = vg.Points(1)
	velocityLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(velocityLine)
	p.Legend.Add("dy", velocityLine)

	if r.fall != nil {
		for _, t := range rows {
			if t.FrameIndex != r.fall.FrameIndex {
				continue
			}
			marker, err := plotter.NewScatter(plotter.XYs{{X: float64(t.FrameIndex), Y: t.CentroidY}})
			if err != nil {
				return false, errors.Wrap(err, "fall marker")
			}
			marker.Color = fallColor
			marker.Shape = draw.CrossGlyph{}
			marker.Radius = vg.Points(5)
			p.Add(marker)
			p.Legend.Add("fall", marker)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return false, errors.Wrapf(err, "saving plot %s", path)
	}
	return true, nil
}
