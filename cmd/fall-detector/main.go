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
	"path/filepath"
	"syscall"

	config "github.com/TheCacophonyProject/go-config"
	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"
	"periph.io/x/periph/host"

	"github.com/TheCacophonyProject/fall-detector/alert"
	"github.com/TheCacophonyProject/fall-detector/device"
	"github.com/TheCacophonyProject/fall-detector/motion"
	"github.com/TheCacophonyProject/fall-detector/source"
	"github.com/TheCacophonyProject/fall-detector/telemetry"
	"github.com/TheCacophonyProject/fall-detector/throttle"
)

const (
	resultName = "result.txt"
	plotName   = "plot.png"
)

var version = "<not set>"

type Args struct {
	ConfigFile   string `arg:"-c,--config" help:"path to configuration file"`
	ConfigDir    string `arg:"--device-config" help:"path to the device config directory, used for sunrise/sunset alert windows"`
	Source       string `arg:"positional" help:"video file, camera number, CPTV file or image directory (overrides the config)"`
	Timestamps   bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	Verbose      bool   `arg:"-v,--verbose" help:"make logging more verbose"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/fall-detector.yaml"
	args.ConfigDir = config.DefaultConfigDir
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	if args.Source != "" {
		conf.Source = args.Source
	}
	if args.Verbose {
		conf.Motion.Verbose = true
	}
	settings, err := device.Load(args.ConfigDir)
	if err != nil {
		log.Printf("no device settings: %v", err)
	} else {
		conf.applyDevice(settings)
	}
	logConfig(conf)

	if conf.Alert.AlarmPin != "" {
		log.Println("host initialisation")
		if _, err := host.Init(); err != nil {
			return err
		}
	}

	notifiers, err := alert.NewNotifiers(conf.Alert)
	if err != nil {
		return err
	}
	var notifier alert.Notifier = notifiers
	if conf.Throttler.Activate {
		var listener throttle.ThrottledEventListener
		if conf.Alert.DBus {
			listener = new(throttle.ThrottledEventRecorder)
		}
		notifier = throttle.NewThrottledNotifier(notifiers, &conf.Throttler, listener)
	}
	dispatcher := alert.NewDispatcher(conf.Source, conf.Alert.QueueSize, conf.Alert.Timeout, notifier)
	defer notifiers.Close()
	defer dispatcher.Close()

	recorder := telemetry.NewRecorder(dispatcher)
	analyzer, err := motion.NewAnalyzer(conf.Motion, recorder)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	log.Printf("opening %s", conf.Source)
	src, err := source.Open(conf.Source, conf.Input)
	if err != nil {
		return err
	}
	defer src.Close()
	log.Printf("source frame rate: %.1f fps", src.FPS())

	if err := os.MkdirAll(conf.OutputDir, 0755); err != nil {
		return err
	}

	d := newDetector(src, analyzer, recorder)
	d.sdNotify = func(state string) { daemon.SdNotify(false, state) }
	snapshots := newSnapshotter(conf.OutputDir, d)
	snapshots.delete()

	if conf.DBusService {
		log.Println("starting d-bus service")
		if err := startService(d, snapshots); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	daemon.SdNotify(false, daemon.SdNotifyReady)
	runErr := d.run(ctx)

	// Whatever was analysed before an error is still worth reporting.
	if err := writeOutputs(conf, recorder); err != nil {
		return err
	}
	return runErr
}

func writeOutputs(conf *Config, recorder *telemetry.Recorder) error {
	if fall := recorder.Fall(); fall != nil {
		log.Printf("fall detected at frame %d (%.2fs)", fall.FrameIndex, fall.ElapsedSeconds)
	} else {
		log.Print("no fall detected")
	}
	log.Print(recorder.Summary())

	resultPath := filepath.Join(conf.OutputDir, resultName)
	if err := recorder.WriteResultFile(resultPath, conf.Source); err != nil {
		return err
	}
	log.Printf("result written to %s", resultPath)

	plotPath := filepath.Join(conf.OutputDir, plotName)
	saved, err := recorder.SavePlot(plotPath)
	if err != nil {
		return err
	}
	if saved {
		log.Printf("plot written to %s", plotPath)
	}
	return nil
}

func logConfig(conf *Config) {
	log.Printf("source: %s", conf.Source)
	log.Printf("output dir: %s", conf.OutputDir)
	log.Printf("input: %+v", conf.Input)
	log.Printf("motion: %+v", conf.Motion)
	log.Printf("throttler: %+v", conf.Throttler)
	if conf.Alert.HTTP.URL != "" {
		log.Printf("alert url: %s", conf.Alert.HTTP.URL)
	}
	if conf.Alert.Sound.File != "" {
		log.Printf("alert sound: %s", conf.Alert.Sound.File)
		if conf.Alert.Sound.WindowStart != "" {
			log.Printf("alert sound window: %s to %s", conf.Alert.Sound.WindowStart, conf.Alert.Sound.WindowEnd)
		}
	}
	if conf.Alert.MQTT.Broker != "" {
		log.Printf("alert mqtt: %s %s", conf.Alert.MQTT.Broker, conf.Alert.MQTT.Topic)
	}
	if conf.Alert.AlarmPin != "" {
		log.Printf("alarm pin: %s", conf.Alert.AlarmPin)
	}
}
