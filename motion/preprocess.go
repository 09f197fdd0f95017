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

import (
	"math"
)

const claheTiles = 8

// Preprocessor blurs and, for modes that ask for it, equalises frames so that
// consecutive frames can be compared. The scratch buffers are reused between
// frames so a Preprocessor must not be shared between streams.
type Preprocessor struct {
	toneLUT *[256]uint8
	tone    ToneConfig
	filters
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		filters: newFilters(),
	}
}

// Process writes the preprocessed version of src to out.
func (p *Preprocessor) Process(src *Frame, params ModeParams, out *Frame) {
	out.Resize(src.Width, src.Height)
	out.TimeOn = src.TimeOn
	if len(out.Pix) == 0 {
		return
	}
	p.blur(src, params.BlurSize, out)

	if params.Mode != Night {
		return
	}
	if params.Tone.Enabled {
		lut := p.toneCurve(params.Tone)
		for i, v := range out.Pix {
			out.Pix[i] = lut[v]
		}
	}
	if params.Equalize {
		p.equalize(out, params.ClipLimit)
	}
}

// Close releases the filter buffers.
func (p *Preprocessor) Close() {
	p.filters.close()
}

// toneCurve builds a lookup table applying gamma correction followed by a
// linear contrast/brightness adjustment.
func (p *Preprocessor) toneCurve(tone ToneConfig) *[256]uint8 {
	if p.toneLUT != nil && p.tone == tone {
		return p.toneLUT
	}
	lut := new([256]uint8)
	invGamma := 1.0 / tone.Gamma
	alpha := 1.0 + tone.Contrast/100.0
	for i := range lut {
		g := float64(uint8(math.Pow(float64(i)/255.0, invGamma) * 255))
		lut[i] = saturate(math.Abs(g*alpha + tone.Brightness))
	}
	p.toneLUT = lut
	p.tone = tone
	return lut
}

func saturate(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
