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

package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/juju/ratelimit"
	"github.com/stretchr/testify/assert"

	"github.com/TheCacophonyProject/fall-detector/alert"
)

const (
	bucketSize     = 3
	refillInterval = 10 * time.Minute
)

func newTestConfig() *ThrottlerConfig {
	return &ThrottlerConfig{
		Activate:       true,
		BucketSize:     bucketSize,
		RefillInterval: refillInterval,
	}
}

type countNotifier struct {
	alerts int
}

func (n *countNotifier) Notify(ctx context.Context, a alert.Alert) error {
	n.alerts++
	return nil
}

type throttleListener struct {
	events int
}

func (tl *throttleListener) WhenThrottled() {
	tl.events++
}

func newTestThrottledNotifier(conf *ThrottlerConfig) (*countNotifier, *throttleListener, *ThrottledNotifier, *testClock) {
	clock := &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	notifier := new(countNotifier)
	listener := new(throttleListener)
	return notifier, listener, NewThrottledNotifierWithClock(notifier, conf, listener, clock), clock
}

func sendAlerts(t *testing.T, tn *ThrottledNotifier, count int) (throttled int) {
	for i := 0; i < count; i++ {
		err := tn.Notify(context.Background(), alert.Alert{Frame: i})
		if err == ErrThrottled {
			throttled++
		} else {
			assert.NoError(t, err)
		}
	}
	return throttled
}

func TestOnlySendsUntilBucketIsEmpty(t *testing.T) {
	notifier, listener, tn, _ := newTestThrottledNotifier(newTestConfig())

	throttled := sendAlerts(t, tn, bucketSize+2)
	assert.Equal(t, bucketSize, notifier.alerts)
	assert.Equal(t, 2, throttled)
	assert.Equal(t, 2, listener.events)
}

func TestBucketRefillsOverTime(t *testing.T) {
	notifier, _, tn, clock := newTestThrottledNotifier(newTestConfig())
	sendAlerts(t, tn, bucketSize)

	clock.Sleep(refillInterval / 2)
	assert.Equal(t, 1, sendAlerts(t, tn, 1))

	clock.Sleep(refillInterval / 2)
	assert.Equal(t, 0, sendAlerts(t, tn, 1))
	assert.Equal(t, bucketSize+1, notifier.alerts)
}

func TestBucketDoesNotOverfill(t *testing.T) {
	notifier, _, tn, clock := newTestThrottledNotifier(newTestConfig())

	clock.Sleep(100 * refillInterval)
	assert.Equal(t, 2, sendAlerts(t, tn, bucketSize+2))
	assert.Equal(t, bucketSize, notifier.alerts)
}

func TestNoThrottlingWhenDeactivated(t *testing.T) {
	conf := newTestConfig()
	conf.Activate = false
	notifier, listener, tn, _ := newTestThrottledNotifier(conf)

	assert.Equal(t, 0, sendAlerts(t, tn, 20))
	assert.Equal(t, 20, notifier.alerts)
	assert.Equal(t, 0, listener.events)
}

func TestNilListener(t *testing.T) {
	tn := NewThrottledNotifier(new(countNotifier), newTestConfig(), nil)
	assert.Equal(t, 1, sendAlerts(t, tn, bucketSize+1))
}

func TestConfigValidation(t *testing.T) {
	conf := DefaultThrottlerConfig()
	assert.NoError(t, conf.Validate())

	conf.BucketSize = 0
	assert.EqualError(t, conf.Validate(), "throttler bucket-size should be positive")

	conf = DefaultThrottlerConfig()
	conf.RefillInterval = 0
	assert.EqualError(t, conf.Validate(), "throttler refill-interval should be positive")

	conf.Activate = false
	assert.NoError(t, conf.Validate())
}

var _ ratelimit.Clock = new(realClock)
var _ ratelimit.Clock = new(testClock)

// testClock implements a fake ratelimit.Clock for testing.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
}
