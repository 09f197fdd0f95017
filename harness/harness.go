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

// Package harness runs the analyzer over a labelled set of recordings and
// scores the outcome.
package harness

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/fall-detector/motion"
	"github.com/TheCacophonyProject/fall-detector/source"
)

type Outcome int

const (
	OK Outcome = iota
	Mismatch
	Missing
	Failed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "OK"
	case Mismatch:
		return "MISMATCH"
	case Missing:
		return "MISSING"
	default:
		return "FAILED"
	}
}

type Result struct {
	Case
	Outcome  Outcome
	Detected bool
	Frame    int
	Frames   int
	Err      error
}

// Runner analyses cases concurrently. Each case gets its own analyzer so
// no state is shared between recordings.
type Runner struct {
	Dir     string
	Motion  motion.Config
	Source  source.Config
	Workers int
	Verbose bool

	open func(name string, conf source.Config) (source.Source, error)
}

func NewRunner(dir string, motionConf motion.Config, sourceConf source.Config) *Runner {
	return &Runner{
		Dir:     dir,
		Motion:  motionConf,
		Source:  sourceConf,
		Workers: runtime.NumCPU(),
		open:    source.Open,
	}
}

// Run analyses every case and returns the results in case order.
func (r *Runner) Run(ctx context.Context, cases []Case) []Result {
	results := make([]Result, len(cases))
	jobs := make(chan int)

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.runCase(ctx, cases[i])
			}
		}()
	}

	for i := range cases {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (r *Runner) runCase(ctx context.Context, c Case) Result {
	res := Result{Case: c}
	path := filepath.Join(r.Dir, c.File)
	if _, err := os.Stat(path); err != nil {
		res.Outcome = Missing
		res.Err = err
		return res
	}

	detected, frame, frames, err := r.analyse(ctx, path)
	res.Detected = detected
	res.Frame = frame
	res.Frames = frames
	switch {
	case err != nil:
		res.Outcome = Failed
		res.Err = err
	case detected == c.ExpectFall:
		res.Outcome = OK
	default:
		res.Outcome = Mismatch
	}
	return res
}

// analyse plays path until a fall is confirmed or the recording ends.
func (r *Runner) analyse(ctx context.Context, path string) (bool, int, int, error) {
	conf := r.Motion
	conf.Verbose = r.Verbose
	analyzer, err := motion.NewAnalyzer(conf, nil)
	if err != nil {
		return false, 0, 0, err
	}
	defer analyzer.Close()
	analyzer.SetName(filepath.Base(path))

	src, err := r.open(path, r.Source)
	if err != nil {
		return false, 0, 0, err
	}
	defer src.Close()

	frame := new(motion.Frame)
	for {
		if err := ctx.Err(); err != nil {
			return false, 0, analyzer.FrameCount(), err
		}
		if err := src.Next(frame); err != nil {
			if err == io.EOF {
				return false, 0, analyzer.FrameCount(), nil
			}
			return false, 0, analyzer.FrameCount(), errors.Wrapf(err, "reading %s", path)
		}
		if t := analyzer.Process(frame); t.Fall {
			if r.Verbose {
				log.Printf("%s: fall at frame %d", filepath.Base(path), t.FrameIndex)
			}
			return true, t.FrameIndex, analyzer.FrameCount(), nil
		}
	}
}

// Summary totals a run.
type Summary struct {
	Total      int
	OK         int
	Mismatches int
	Missing    int
	Failed     int
	Duration   time.Duration
}

func Summarise(results []Result, duration time.Duration) Summary {
	s := Summary{Total: len(results), Duration: duration}
	for _, res := range results {
		switch res.Outcome {
		case OK:
			s.OK++
		case Mismatch:
			s.Mismatches++
		case Missing:
			s.Missing++
		default:
			s.Failed++
		}
	}
	return s
}

// Score is the percentage of cases that came out as expected. Missing
// files count against the score.
func (s Summary) Score() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.OK) / float64(s.Total) * 100
}
