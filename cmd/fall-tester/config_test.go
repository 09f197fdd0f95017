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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/fall-detector/harness"
	"github.com/TheCacophonyProject/fall-detector/motion"
)

func TestDefaults(t *testing.T) {
	conf, err := ParseConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, harness.DefaultCases(), conf.Cases)
	assert.Equal(t, motion.DefaultConfig(), conf.Motion)
	assert.Equal(t, 30.0, conf.Input.FallbackFPS)
}

func TestCasesReplaceDefaults(t *testing.T) {
	conf, err := ParseConfig([]byte(`
input:
  rotate: true
motion:
  analysis-stride: 2
cases:
  - file: fall.mp4
    expect-fall: true
  - file: sitting.mp4
`))
	require.NoError(t, err)
	assert.Equal(t, []harness.Case{
		{File: "fall.mp4", ExpectFall: true},
		{File: "sitting.mp4", ExpectFall: false},
	}, conf.Cases)
	assert.True(t, conf.Input.Rotate)
	assert.Equal(t, 2, conf.Motion.AnalysisStride)
	assert.Equal(t, 5, conf.Motion.SmoothingWindow)
}

func TestInvalid(t *testing.T) {
	_, err := ParseConfig([]byte("cases: []"))
	assert.EqualError(t, err, "no test cases given")

	_, err = ParseConfig([]byte("cases:\n  - expect-fall: true"))
	assert.EqualError(t, err, "test case without a file")

	_, err = ParseConfig([]byte("motion:\n  smoothing-window: 0"))
	assert.EqualError(t, err, "smoothing-window should be positive")
}
