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
	"fmt"
	"io/ioutil"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/fall-detector/alert"
	"github.com/TheCacophonyProject/fall-detector/device"
	"github.com/TheCacophonyProject/fall-detector/motion"
	"github.com/TheCacophonyProject/fall-detector/source"
	"github.com/TheCacophonyProject/fall-detector/throttle"
)

func TestAllDefaults(t *testing.T) {
	conf, err := ParseConfig([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Source:      "0",
		OutputDir:   "/var/spool/fall-detector",
		DBusService: false,
		Input: source.Config{
			Rotate:      false,
			FallbackFPS: 30,
		},
		Motion: motion.DefaultConfig(),
		Alert: alert.Config{
			QueueSize: 8,
			Timeout:   10 * time.Second,
			HTTP: alert.HTTPConfig{
				URL:     "http://127.0.0.1:5000/api/alert",
				Timeout: 2 * time.Second,
			},
			Sound: alert.SoundConfig{
				Player:     "aplay",
				PlayerArgs: []string{"-q"},
			},
			MQTT: alert.MQTTConfig{
				Topic:    "fall-detector/alerts",
				ClientID: "fall-detector",
				QoS:      1,
			},
		},
		Throttler: throttle.ThrottlerConfig{
			Activate:       true,
			BucketSize:     3,
			RefillInterval: 10 * time.Minute,
		},
	}, *conf)
}

func TestAllProgramDefaultsMatchDefaultYamlFile(t *testing.T) {
	configDefaults, err := ParseConfig([]byte(""))
	require.NoError(t, err)

	var configYAML Config
	require.NoError(t, yaml.UnmarshalStrict(getDefaultConfig(), &configYAML))

	assert.Equal(t, configDefaults, &configYAML)
}

func TestAllSet(t *testing.T) {
	config := []byte(`
source: /videos/fall.mp4
output-dir: /some/where
dbus-service: true
input:
    rotate: true
    fallback-fps: 25
    thermal-min: 2900
    thermal-max: 3600
motion:
    darkness-threshold: 30
    day:
        blur-size: 3
        pixel-threshold: 25
        min-area: 1000
        velocity-threshold: 40
        clip-limit: 2
        equalize: true
    night:
        blur-size: 9
        pixel-threshold: 12
        min-area: 500
        velocity-threshold: 15
        clip-limit: 4
        equalize: false
    night-tone:
        enabled: true
        gamma: 2
        contrast: -40
        brightness: 150
    analysis-stride: 3
    smoothing-window: 4
    consecutive-validations: 6
    max-dy: 200
    horizontal-ratio: 1.5
    verbose: true
alert:
    queue-size: 2
    timeout: 5s
    http:
        url: http://alerts.local/api/alert
        timeout: 1s
    sound:
        file: /usr/share/sounds/alarm.wav
        player: paplay
        player-args: []
        window-start: "22:00"
        window-end: "07:00"
        latitude: -43.5
        longitude: 172.6
        use-device-window: true
    mqtt:
        broker: tcp://broker.local:1883
        topic: home/falls
        client-id: lounge
        username: user
        password: pass
        qos: 2
    dbus: true
    alarm-pin: GPIO17
throttler:
    activate: false
    bucket-size: 1
    refill-interval: 1h
`)

	conf, err := ParseConfig(config)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Source:      "/videos/fall.mp4",
		OutputDir:   "/some/where",
		DBusService: true,
		Input: source.Config{
			Rotate:      true,
			FallbackFPS: 25,
			ThermalMin:  2900,
			ThermalMax:  3600,
		},
		Motion: motion.Config{
			DarknessThreshold: 30,
			Day: motion.ModeConfig{
				BlurSize:          3,
				PixelThreshold:    25,
				MinArea:           1000,
				VelocityThreshold: 40,
				ClipLimit:         2,
				Equalize:          true,
			},
			Night: motion.ModeConfig{
				BlurSize:          9,
				PixelThreshold:    12,
				MinArea:           500,
				VelocityThreshold: 15,
				ClipLimit:         4,
				Equalize:          false,
			},
			NightTone: motion.ToneConfig{
				Enabled:    true,
				Gamma:      2,
				Contrast:   -40,
				Brightness: 150,
			},
			AnalysisStride:         3,
			SmoothingWindow:        4,
			ConsecutiveValidations: 6,
			MaxDY:                  200,
			HorizontalRatio:        1.5,
			Verbose:                true,
		},
		Alert: alert.Config{
			QueueSize: 2,
			Timeout:   5 * time.Second,
			HTTP: alert.HTTPConfig{
				URL:     "http://alerts.local/api/alert",
				Timeout: time.Second,
			},
			Sound: alert.SoundConfig{
				File:        "/usr/share/sounds/alarm.wav",
				Player:      "paplay",
				PlayerArgs:  []string{},
				WindowStart: "22:00",
				WindowEnd:   "07:00",
				Latitude:    -43.5,
				Longitude:   172.6,

				UseDeviceWindow: true,
			},
			MQTT: alert.MQTTConfig{
				Broker:   "tcp://broker.local:1883",
				Topic:    "home/falls",
				ClientID: "lounge",
				Username: "user",
				Password: "pass",
				QoS:      2,
			},
			DBus:     true,
			AlarmPin: "GPIO17",
		},
		Throttler: throttle.ThrottlerConfig{
			Activate:       false,
			BucketSize:     1,
			RefillInterval: time.Hour,
		},
	}, *conf)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		config string
		err    string
	}{
		{"source: \"\"", "source must be set"},
		{"output-dir: \"\"", "output-dir must be set"},
		{"input:\n  fallback-fps: 0", "input fallback-fps should be positive"},
		{"input:\n  thermal-min: 3000\n  thermal-max: 3000", "input thermal-max should be above thermal-min"},
		{"motion:\n  day:\n    blur-size: 4", "day blur-size should be a positive odd number"},
		{"alert:\n  queue-size: 0", "alert queue-size should be positive"},
		{"throttler:\n  bucket-size: 0", "throttler bucket-size should be positive"},
	}
	for _, test := range tests {
		conf, err := ParseConfig([]byte(test.config))
		assert.Nil(t, conf, test.config)
		assert.EqualError(t, err, test.err, test.config)
	}
}

func TestMissingConfigFileUsesDefaults(t *testing.T) {
	conf, err := ParseConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0", conf.Source)
}

func TestDeviceFillsSoundWindow(t *testing.T) {
	settings := &device.Settings{
		Latitude:    -43.5,
		Longitude:   172.6,
		WindowStart: "-30m",
		WindowEnd:   "+30m",
	}

	conf, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	conf.applyDevice(settings)
	assert.Equal(t, -43.5, conf.Alert.Sound.Latitude)
	assert.Equal(t, 172.6, conf.Alert.Sound.Longitude)
	assert.Equal(t, "", conf.Alert.Sound.WindowStart)

	conf, err = ParseConfig([]byte("alert:\n  sound:\n    latitude: 10\n    longitude: 20\n    use-device-window: true"))
	require.NoError(t, err)
	conf.applyDevice(settings)
	assert.Equal(t, 10.0, conf.Alert.Sound.Latitude)
	assert.Equal(t, 20.0, conf.Alert.Sound.Longitude)
	assert.Equal(t, "-30m", conf.Alert.Sound.WindowStart)
	assert.Equal(t, "+30m", conf.Alert.Sound.WindowEnd)
}

func TestDeviceWithoutLocation(t *testing.T) {
	conf, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	conf.applyDevice(&device.Settings{WindowStart: "22:00", WindowEnd: "06:00"})
	assert.Equal(t, 0.0, conf.Alert.Sound.Latitude)
	assert.Equal(t, 0.0, conf.Alert.Sound.Longitude)
	assert.Equal(t, "", conf.Alert.Sound.WindowStart)
}

func getDefaultConfig() []byte {
	dir := getBaseDir()
	configFile := strings.Replace(dir, "cmd/fall-detector", "_release/fall-detector.yaml", 1)
	buf, err := ioutil.ReadFile(configFile)
	if err != nil {
		panic(err)
	}
	return buf
}

func getBaseDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic(fmt.Errorf("could not find the base dir where sample files are"))
	}
	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		panic(err)
	}
	return dir
}
