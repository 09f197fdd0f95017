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

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// MQTTNotifier publishes alerts to a broker topic.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
	qos    byte
}

func NewMQTTNotifier(conf MQTTConfig) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(conf.Broker)
	opts.SetClientID(conf.ClientID)
	if conf.Username != "" {
		opts.SetUsername(conf.Username)
	}
	if conf.Password != "" {
		opts.SetPassword(conf.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "connecting to MQTT broker %s", conf.Broker)
	}
	return newMQTTNotifier(client, conf.Topic, conf.QoS), nil
}

func newMQTTNotifier(client mqtt.Client, topic string, qos byte) *MQTTNotifier {
	return &MQTTNotifier{
		client: client,
		topic:  topic,
		qos:    qos,
	}
}

func (n *MQTTNotifier) Notify(ctx context.Context, a Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "encoding alert")
	}
	token := n.client.Publish(n.topic, n.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "publishing alert to %s", n.topic)
	}
	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "publishing alert to %s", n.topic)
	}
	return nil
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
