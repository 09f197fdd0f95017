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
	"encoding/json"
	"time"

	"github.com/godbus/dbus"
	"github.com/pkg/errors"
)

// QueueEvent adds an event to the device's event queue.
func QueueEvent(eventType string, details map[string]interface{}, ts time.Time) error {
	description := map[string]interface{}{
		"type": eventType,
	}
	if len(details) > 0 {
		description["details"] = details
	}
	detailsJSON, err := json.Marshal(map[string]interface{}{
		"description": description,
	})
	if err != nil {
		return err
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	obj := conn.Object("org.cacophony.Events", "/org/cacophony/Events")
	call := obj.Call("org.cacophony.Events.Queue", 0, detailsJSON, ts.UnixNano())
	return call.Err
}

// DBusNotifier records falls as "fall" events.
type DBusNotifier struct {
	queue   func(eventType string, details map[string]interface{}, ts time.Time) error
	nowFunc func() time.Time
}

func NewDBusNotifier() *DBusNotifier {
	return &DBusNotifier{
		queue:   QueueEvent,
		nowFunc: time.Now,
	}
}

func (n *DBusNotifier) Notify(ctx context.Context, a Alert) error {
	details := map[string]interface{}{
		"frame":  a.Frame,
		"time":   a.Time,
		"source": a.Source,
	}
	if err := n.queue("fall", details, n.nowFunc()); err != nil {
		return errors.Wrap(err, "queueing fall event")
	}
	return nil
}
