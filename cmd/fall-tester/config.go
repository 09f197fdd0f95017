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

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/fall-detector/harness"
	"github.com/TheCacophonyProject/fall-detector/motion"
	"github.com/TheCacophonyProject/fall-detector/source"
)

// Config tunes a test run. Without a file the production motion settings
// are checked against the built in cases.
type Config struct {
	Input  source.Config  `yaml:"input"`
	Motion motion.Config  `yaml:"motion"`
	Cases  []harness.Case `yaml:"cases"`
}

func defaultConfig() Config {
	return Config{
		Input:  source.DefaultConfig(),
		Motion: motion.DefaultConfig(),
		Cases:  harness.DefaultCases(),
	}
}

func (conf *Config) Validate() error {
	if len(conf.Cases) == 0 {
		return errors.New("no test cases given")
	}
	for _, c := range conf.Cases {
		if c.File == "" {
			return errors.New("test case without a file")
		}
	}
	return conf.Motion.Validate()
}

func ParseConfigFile(filename string) (*Config, error) {
	if filename == "" {
		return ParseConfig(nil)
	}
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
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
