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
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/fall-detector/harness"
)

var version = "<not set>"

type Args struct {
	Dir        string `arg:"positional" help:"directory holding the test recordings"`
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Workers    int    `arg:"-w,--workers" help:"number of recordings analysed at once (defaults to the number of CPUs)"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	Verbose    bool   `arg:"-v,--verbose" help:"make logging more verbose"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.Dir = "videos"
	arg.MustParse(&args)
	return args
}

func main() {
	ok, err := runMain()
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(1)
	}
}

// runMain reports whether every case came out as expected.
func runMain() (bool, error) {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0)
	}

	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return false, err
	}

	runner := harness.NewRunner(args.Dir, conf.Motion, conf.Input)
	runner.Verbose = args.Verbose
	if args.Workers > 0 {
		runner.Workers = args.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("analysing %d recordings from %s with %d workers", len(conf.Cases), args.Dir, runner.Workers)
	start := time.Now()
	results := runner.Run(ctx, conf.Cases)
	summary := harness.Summarise(results, time.Since(start))

	harness.WriteReport(os.Stdout, results, summary)
	return summary.OK == summary.Total, nil
}
