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
	"context"
	"log"

	"github.com/pkg/errors"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// GPIONotifier raises an alarm pin when a fall is detected. The pin stays
// high until the notifier is closed.
type GPIONotifier struct {
	pin gpio.PinOut
}

// NewGPIONotifier looks up the pin by name. The periph host must already be
// initialised.
func NewGPIONotifier(pinName string) (*GPIONotifier, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, errors.Errorf("unable to find alarm pin %s", pinName)
	}
	return newGPIONotifier(pin)
}

func newGPIONotifier(pin gpio.PinOut) (*GPIONotifier, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, errors.Wrapf(err, "setting up alarm pin %s", pin)
	}
	return &GPIONotifier{pin: pin}, nil
}

func (n *GPIONotifier) Notify(ctx context.Context, a Alert) error {
	if err := n.pin.Out(gpio.High); err != nil {
		return errors.Wrapf(err, "raising alarm pin %s", n.pin)
	}
	return nil
}

func (n *GPIONotifier) Close() {
	if err := n.pin.Out(gpio.Low); err != nil {
		log.Printf("failed to lower alarm pin %s: %v", n.pin, err)
	}
}
