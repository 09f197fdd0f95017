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


// Package device reads the location and recording windows kept in the
// shared cacophony config directory. They let alert windows follow
// sunrise and sunset without repeating the location in every config.
package device

import (
	config "github.com/TheCacophonyProject/go-config"
	"github.com/pkg/errors"
)

const (
	maxLatitude  = 90
	maxLongitude = 180
)

// Store is the part of a go-config Config used here.
type Store interface {
	Unmarshal(key string, raw interface{}) error
}

type Settings struct {
	Latitude    float64
	Longitude   float64
	WindowStart string
	WindowEnd   string
}

// Load reads the settings from the config directory dir.
func Load(dir string) (*Settings, error) {
	conf, err := config.New(dir)
	if err != nil {
		return nil, errors.Wrap(err, "opening device config")
	}
	return Read(conf)
}

func Read(store Store) (*Settings, error) {
	loc := config.DefaultWindowLocation()
	if err := store.Unmarshal(config.LocationKey, &loc); err != nil {
		return nil, errors.Wrap(err, "reading location")
	}
	windows := config.DefaultWindows()
	if err := store.Unmarshal(config.WindowsKey, &windows); err != nil {
		return nil, errors.Wrap(err, "reading windows")
	}
	s := &Settings{
		Latitude:    float64(loc.Latitude),
		Longitude:   float64(loc.Longitude),
		WindowStart: windows.StartRecording,
		WindowEnd:   windows.StopRecording,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// HasLocation is false for the (0, 0) location written before a fix is
// known.
func (s *Settings) HasLocation() bool {
	return s.Latitude != 0 || s.Longitude != 0
}

func (s *Settings) Validate() error {
	if s.Latitude < -maxLatitude || s.Latitude > maxLatitude {
		return errors.New("latitude outside of normal range")
	}
	if s.Longitude < -maxLongitude || s.Longitude > maxLongitude {
		return errors.New("longitude outside of normal range")
	}
	return nil
}
