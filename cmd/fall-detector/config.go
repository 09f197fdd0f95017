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
	"errors"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/fall-detector/alert"
	"github.com/TheCacophonyProject/fall-detector/device"
	"github.com/TheCacophonyProject/fall-detector/motion"
	"github.com/TheCacophonyProject/fall-detector/source"
	"github.com/TheCacophonyProject/fall-detector/throttle"
)

type Config struct {
	Source      string                   `yaml:"source"`
	OutputDir   string                   `yaml:"output-dir"`
	DBusService bool                     `yaml:"dbus-service"`
	Input       source.Config            `yaml:"input"`
	Motion      motion.Config            `yaml:"motion"`
	Alert       alert.Config             `yaml:"alert"`
	Throttler   throttle.ThrottlerConfig `yaml:"throttler"`
}

func (conf *Config) Validate() error {
	if conf.Source == "" {
		return errors.New("source must be set")
	}
	if conf.OutputDir == "" {
		return errors.New("output-dir must be set")
	}
	if conf.Input.FallbackFPS <= 0 {
		return errors.New("input fallback-fps should be positive")
	}
	if conf.Input.ThermalMax != 0 && conf.Input.ThermalMax <= conf.Input.ThermalMin {
		return errors.New("input thermal-max should be above thermal-min")
	}
	if err := conf.Motion.Validate(); err != nil {
		return err
	}
	if err := conf.Alert.Validate(); err != nil {
		return err
	}
	if err := conf.Throttler.Validate(); err != nil {
		return err
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Source:      "0",
		OutputDir:   "/var/spool/fall-detector",
		DBusService: false,
		Input:       source.DefaultConfig(),
		Motion:      motion.DefaultConfig(),
		Alert:       alert.DefaultConfig(),
		Throttler:   throttle.DefaultThrottlerConfig(),
	}
}

// ParseConfigFile reads filename over the defaults. A missing file leaves
// the defaults in place.
func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig()
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// applyDevice fills in the sound window position unless the config
// already sets one, and takes the device's windows when asked to.
func (conf *Config) applyDevice(settings *device.Settings) {
	sound := &conf.Alert.Sound
	if sound.Latitude == 0 && sound.Longitude == 0 && settings.HasLocation() {
		sound.Latitude = settings.Latitude
		sound.Longitude = settings.Longitude
	}
	if sound.UseDeviceWindow {
		sound.WindowStart = settings.WindowStart
		sound.WindowEnd = settings.WindowEnd
	}
}
