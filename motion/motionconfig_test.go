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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	conf := DefaultConfig()
	assert.NoError(t, conf.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"darkness", func(c *Config) { c.DarknessThreshold = 300 }, "darkness-threshold should be in range 0 - 255"},
		{"even blur", func(c *Config) { c.Day.BlurSize = 4 }, "day blur-size should be a positive odd number"},
		{"zero blur", func(c *Config) { c.Night.BlurSize = 0 }, "night blur-size should be a positive odd number"},
		{"min area", func(c *Config) { c.Night.MinArea = -1 }, "night min-area can't be negative"},
		{"velocity", func(c *Config) { c.Day.VelocityThreshold = -1 }, "day velocity-threshold can't be negative"},
		{"clip limit", func(c *Config) { c.Night.ClipLimit = 0 }, "night clip-limit should be positive when equalize is set"},
		{"gamma", func(c *Config) {
			c.NightTone.Enabled = true
			c.NightTone.Gamma = 0
		}, "night-tone gamma should be positive"},
		{"stride", func(c *Config) { c.AnalysisStride = 0 }, "analysis-stride should be positive"},
		{"smoothing", func(c *Config) { c.SmoothingWindow = 0 }, "smoothing-window should be positive"},
		{"validations", func(c *Config) { c.ConsecutiveValidations = 0 }, "consecutive-validations should be positive"},
		{"max dy", func(c *Config) { c.MaxDY = 45 }, "max-dy should be larger than the day and night velocity-threshold"},
		{"ratio", func(c *Config) { c.HorizontalRatio = 0 }, "horizontal-ratio should be positive"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			conf := DefaultConfig()
			test.modify(&conf)
			assert.EqualError(t, conf.Validate(), test.err)
		})
	}
}

func TestClipLimitOnlyNeededWhenEqualising(t *testing.T) {
	conf := DefaultConfig()
	conf.Day.ClipLimit = 0
	conf.Day.Equalize = false
	assert.NoError(t, conf.Validate())
}
