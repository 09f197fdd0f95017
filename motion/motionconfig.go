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
	"errors"
	"fmt"
)

// ModeConfig holds the tunables used while a frame is classified as being
// in a particular light mode.
type ModeConfig struct {
	BlurSize          int     `yaml:"blur-size"`
	PixelThreshold    uint8   `yaml:"pixel-threshold"`
	MinArea           int     `yaml:"min-area"`
	VelocityThreshold float64 `yaml:"velocity-threshold"`
	ClipLimit         float64 `yaml:"clip-limit"`
	Equalize          bool    `yaml:"equalize"`
}

// ToneConfig is an optional gamma/contrast/brightness curve applied to
// night frames before equalisation.
type ToneConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Gamma      float64 `yaml:"gamma"`
	Contrast   float64 `yaml:"contrast"`
	Brightness float64 `yaml:"brightness"`
}

type Config struct {
	DarknessThreshold      float64    `yaml:"darkness-threshold"`
	Day                    ModeConfig `yaml:"day"`
	Night                  ModeConfig `yaml:"night"`
	NightTone              ToneConfig `yaml:"night-tone"`
	AnalysisStride         int        `yaml:"analysis-stride"`
	SmoothingWindow        int        `yaml:"smoothing-window"`
	ConsecutiveValidations int        `yaml:"consecutive-validations"`
	MaxDY                  float64    `yaml:"max-dy"`
	HorizontalRatio        float64    `yaml:"horizontal-ratio"`
	Verbose                bool       `yaml:"verbose"`
}

// DefaultConfig returns the tuning the detector was calibrated with. Areas
// are counted in foreground pixels.
func DefaultConfig() Config {
	return Config{
		DarknessThreshold: 20,
		Day: ModeConfig{
			BlurSize:          5,
			PixelThreshold:    20,
			MinArea:           19608,
			VelocityThreshold: 45,
			ClipLimit:         1.0,
			Equalize:          false,
		},
		Night: ModeConfig{
			BlurSize:          7,
			PixelThreshold:    10,
			MinArea:           7843,
			VelocityThreshold: 20,
			ClipLimit:         3.5,
			Equalize:          true,
		},
		NightTone: ToneConfig{
			Enabled:    false,
			Gamma:      2.9,
			Contrast:   -67,
			Brightness: 200,
		},
		AnalysisStride:         5,
		SmoothingWindow:        5,
		ConsecutiveValidations: 5,
		MaxDY:                  250,
		HorizontalRatio:        1.2,
	}
}

func (conf *Config) Validate() error {
	if conf.DarknessThreshold < 0 || conf.DarknessThreshold > 255 {
		return errors.New("darkness-threshold should be in range 0 - 255")
	}
	if err := conf.Day.validate("day"); err != nil {
		return err
	}
	if err := conf.Night.validate("night"); err != nil {
		return err
	}
	if conf.NightTone.Enabled && conf.NightTone.Gamma <= 0 {
		return errors.New("night-tone gamma should be positive")
	}
	if conf.AnalysisStride < 1 {
		return errors.New("analysis-stride should be positive")
	}
	if conf.SmoothingWindow < 1 {
		return errors.New("smoothing-window should be positive")
	}
	if conf.ConsecutiveValidations < 1 {
		return errors.New("consecutive-validations should be positive")
	}
	if conf.MaxDY <= conf.Day.VelocityThreshold || conf.MaxDY <= conf.Night.VelocityThreshold {
		return errors.New("max-dy should be larger than the day and night velocity-threshold")
	}
	if conf.HorizontalRatio <= 0 {
		return errors.New("horizontal-ratio should be positive")
	}
	return nil
}

func (conf *ModeConfig) validate(name string) error {
	if conf.BlurSize < 1 || conf.BlurSize%2 == 0 {
		return fmt.Errorf("%s blur-size should be a positive odd number", name)
	}
	if conf.MinArea < 0 {
		return fmt.Errorf("%s min-area can't be negative", name)
	}
	if conf.VelocityThreshold < 0 {
		return fmt.Errorf("%s velocity-threshold can't be negative", name)
	}
	if conf.Equalize && conf.ClipLimit <= 0 {
		return fmt.Errorf("%s clip-limit should be positive when equalize is set", name)
	}
	return nil
}
