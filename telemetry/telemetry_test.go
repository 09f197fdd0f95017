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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/fall-detector/motion"
)

func TestStats(t *testing.T) {
	s := NewStats()
	assert.Equal(t, "", s.String("dy:all"))

	for _, x := range []int{4, -2, 10} {
		s.Update("dy", x)
	}
	s.Update("area", 100)

	assert.Equal(t, "dy: -2 -> 10 (avg: 4.00); area: 100(max)", s.String("dy:all area:max missing:all bad"))
	assert.Equal(t, "dy: 3; dy: -2(min); dy: 4.00(avg); dy: ???", s.String("dy:n dy:min dy:avg dy:foo"))
	assert.Equal(t, []string{"area", "dy"}, s.Names())

	s.Reset()
	assert.Equal(t, 0, s.Get("dy").N)
	assert.Equal(t, "", s.String("dy:all"))
}

type countingListener struct {
	events int
}

func (l *countingListener) FallDetected(motion.FallEvent) {
	l.events++
}

func playScene(r *Recorder) {
	for i := 0; i < 5; i++ {
		r.Record(motion.Telemetry{FrameIndex: i, Brightness: 100})
	}
	for i := 5; i < 10; i++ {
		r.Record(motion.Telemetry{
			FrameIndex: i,
			Brightness: 110,
			HasBlob:    true,
			Area:       1000 + i,
			DY:         (i - 5) * 10,
			CentroidY:  float64(i * 10),
		})
	}
}

func TestRecorderSummary(t *testing.T) {
	r := NewRecorder(nil)
	playScene(r)

	assert.Len(t, r.Rows(), 10)
	assert.Equal(t,
		"dy: 0 -> 40 (avg: 20.00); area: 1005 -> 1009 (avg: 1007.00); brightness: 105.00(avg); tracked: 5",
		r.Summary())
}

func TestRecorderDropsOldestRows(t *testing.T) {
	r := NewBoundedRecorder(nil, 4)
	playScene(r)

	rows := r.Rows()
	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, 6+i, row.FrameIndex)
	}
	assert.Equal(t, 10, r.Frames())
	assert.Equal(t, 5, r.Stats().Get("tracked").N)
	assert.Equal(t, 10, r.Stats().Get("brightness").N)
	assert.Equal(t,
		"dy: 0 -> 40 (avg: 20.00); area: 1005 -> 1009 (avg: 1007.00); brightness: 105.00(avg); tracked: 5",
		r.Summary())

	r.Record(motion.Telemetry{FrameIndex: 10})
	assert.Equal(t, 7, r.Rows()[0].FrameIndex)
	assert.Equal(t, 10, r.Rows()[3].FrameIndex)
}

func TestRecorderKeepsFirstFall(t *testing.T) {
	next := new(countingListener)
	r := NewRecorder(next)

	r.FallDetected(motion.FallEvent{FrameIndex: 8, ElapsedSeconds: 0.8})
	r.FallDetected(motion.FallEvent{FrameIndex: 12})
	require.NotNil(t, r.Fall())
	assert.Equal(t, 8, r.Fall().FrameIndex)
	assert.Equal(t, 2, next.events)
}

func TestWriteResult(t *testing.T) {
	r := NewRecorder(nil)
	playScene(r)

	var buf bytes.Buffer
	require.NoError(t, r.WriteResult(&buf, "fall.mp4"))
	assert.Contains(t, buf.String(), "No fall detected in fall.mp4\nFrames analysed: 10\n")

	r.FallDetected(motion.FallEvent{FrameIndex: 8, ElapsedSeconds: 0.8})
	path := filepath.Join(t.TempDir(), "result.txt")
	require.NoError(t, r.WriteResultFile(path, "fall.mp4"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Fall detected in fall.mp4 at frame 8 (0.80 s)\n")
}

func TestSavePlot(t *testing.T) {
	dir := t.TempDir()

	empty := NewRecorder(nil)
	written, err := empty.SavePlot(filepath.Join(dir, "empty.png"))
	require.NoError(t, err)
	assert.False(t, written)
	assert.NoFileExists(t, filepath.Join(dir, "empty.png"))

	r := NewRecorder(nil)
	playScene(r)
	r.FallDetected(motion.FallEvent{FrameIndex: 9})
	path := filepath.Join(dir, "centroid.png")
	written, err = r.SavePlot(path)
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG")))
}
