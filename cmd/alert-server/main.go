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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	arg "github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"github.com/TheCacophonyProject/fall-detector/alertserver"
	"github.com/TheCacophonyProject/fall-detector/logger"
)

const memoryStoreSize = 100

var version = "<not set>"

type Args struct {
	Listen    string `arg:"-l,--listen" help:"address to serve the alert API on"`
	DB        string `arg:"-d,--db" help:"SQLite database for alerts, alerts are kept in memory when empty"`
	StaticDir string `arg:"-s,--static" help:"directory of dashboard files served at /"`
	LogLevel  string `arg:"--log-level" help:"debug, info, warn or error"`
	LogFormat string `arg:"--log-format" help:"console or json"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	args := Args{
		Listen:    ":5000",
		DB:        "/var/lib/fall-detector/alerts.db",
		LogLevel:  "info",
		LogFormat: "json",
	}
	arg.MustParse(&args)
	return args
}

func main() {
	if err := runMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMain() error {
	args := procArgs()

	log, err := logger.New(args.LogLevel, args.LogFormat, "alert-server")
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("running", zap.String("version", version))

	store, err := openStore(args.DB)
	if err != nil {
		return err
	}
	server := alertserver.NewServer(store, log, args.StaticDir)
	defer server.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("listening", zap.String("addr", args.Listen), zap.String("db", args.DB))
	if err := server.ListenAndServe(ctx, args.Listen); err != nil {
		return err
	}
	log.Info("stopped")
	return nil
}

func openStore(path string) (alertserver.Store, error) {
	if path == "" {
		return alertserver.NewMemoryStore(memoryStoreSize), nil
	}
	return alertserver.OpenSQLiteStore(path)
}
