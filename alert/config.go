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

package alert

import (
	"errors"
	"time"
)

type HTTPConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SoundConfig sets up audible alerts. No sound is played when File is
// empty. WindowStart and WindowEnd accept clock times ("22:00") or offsets
// from sunset/sunrise ("-30m"). UseDeviceWindow takes the window from the
// device's recording windows instead.
type SoundConfig struct {
	File        string   `yaml:"file"`
	Player      string   `yaml:"player"`
	PlayerArgs  []string `yaml:"player-args"`
	WindowStart string   `yaml:"window-start"`
	WindowEnd   string   `yaml:"window-end"`
	Latitude    float64  `yaml:"latitude"`
	Longitude   float64  `yaml:"longitude"`

	UseDeviceWindow bool `yaml:"use-device-window"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client-id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
}

type Config struct {
	QueueSize int           `yaml:"queue-size"`
	Timeout   time.Duration `yaml:"timeout"`
	HTTP      HTTPConfig    `yaml:"http"`
	Sound     SoundConfig   `yaml:"sound"`
	MQTT      MQTTConfig    `yaml:"mqtt"`
	DBus      bool          `yaml:"dbus"`
	AlarmPin  string        `yaml:"alarm-pin"`
}

func DefaultConfig() Config {
	return Config{
		QueueSize: 8,
		Timeout:   10 * time.Second,
		HTTP: HTTPConfig{
			URL:     "http://127.0.0.1:5000/api/alert",
			Timeout: 2 * time.Second,
		},
		Sound: SoundConfig{
			Player:     "aplay",
			PlayerArgs: []string{"-q"},
		},
		MQTT: MQTTConfig{
			Topic:    "fall-detector/alerts",
			ClientID: "fall-detector",
			QoS:      1,
		},
	}
}

func (conf *Config) Validate() error {
	if conf.QueueSize < 1 {
		return errors.New("alert queue-size should be positive")
	}
	if conf.Timeout <= 0 {
		return errors.New("alert timeout should be positive")
	}
	if conf.HTTP.URL != "" && conf.HTTP.Timeout <= 0 {
		return errors.New("alert http timeout should be positive")
	}
	if conf.Sound.File != "" && conf.Sound.Player == "" {
		return errors.New("alert sound player must be set when a sound file is given")
	}
	if (conf.Sound.WindowStart == "") != (conf.Sound.WindowEnd == "") {
		return errors.New("alert sound window-start and window-end must be set together")
	}
	if conf.MQTT.Broker != "" && conf.MQTT.Topic == "" {
		return errors.New("alert mqtt topic must be set when a broker is given")
	}
	if conf.MQTT.QoS > 2 {
		return errors.New("alert mqtt qos should be 0, 1 or 2")
	}
	return nil
}

// NewNotifiers builds a notifier for every sink enabled in conf.
func NewNotifiers(conf Config) (Multi, error) {
	var notifiers Multi
	if conf.HTTP.URL != "" {
		notifiers = append(notifiers, NewHTTPNotifier(conf.HTTP.URL, conf.HTTP.Timeout))
	}
	if conf.Sound.File != "" {
		n, err := NewSoundNotifier(conf.Sound)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}
	if conf.MQTT.Broker != "" {
		n, err := NewMQTTNotifier(conf.MQTT)
		if err != nil {
			notifiers.Close()
			return nil, err
		}
		notifiers = append(notifiers, n)
	}
	if conf.DBus {
		notifiers = append(notifiers, NewDBusNotifier())
	}
	if conf.AlarmPin != "" {
		n, err := NewGPIONotifier(conf.AlarmPin)
		if err != nil {
			notifiers.Close()
			return nil, err
		}
		notifiers = append(notifiers, n)
	}
	return notifiers, nil
}
