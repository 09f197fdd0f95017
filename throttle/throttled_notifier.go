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
	"errors"
	"log"
	"time"

	"github.com/juju/ratelimit"

	"github.com/TheCacophonyProject/fall-detector/alert"
)

// ErrThrottled is returned for alerts that were not sent because too many
// alerts went out recently.
var ErrThrottled = errors.New("alert throttled")

func NewThrottledNotifier(
	notifier alert.Notifier,
	conf *ThrottlerConfig,
	listener ThrottledEventListener,
) *ThrottledNotifier {
	return NewThrottledNotifierWithClock(notifier, conf, listener, new(realClock))
}

func NewThrottledNotifierWithClock(
	notifier alert.Notifier,
	conf *ThrottlerConfig,
	listener ThrottledEventListener,
	clock ratelimit.Clock,
) *ThrottledNotifier {
	if listener == nil {
		listener = new(nullListener)
	}
	t := &ThrottledNotifier{
		notifier: notifier,
		listener: listener,
	}
	if conf.Activate {
		t.bucket = ratelimit.NewBucketWithClock(conf.RefillInterval, conf.BucketSize, clock)
	}
	return t
}

// ThrottledNotifier wraps a notifier so that it stops sending alerts (ie
// gets throttled) if asked to alert too often. Repeated alerts usually come
// from the same incident being seen again, or from a scene that keeps
// fooling the detector, and contain no new information.
type ThrottledNotifier struct {
	notifier alert.Notifier
	listener ThrottledEventListener
	bucket   *ratelimit.Bucket
}

type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (lis *nullListener) WhenThrottled() {}

func (t *ThrottledNotifier) Notify(ctx context.Context, a alert.Alert) error {
	if t.bucket != nil && t.bucket.TakeAvailable(1) == 0 {
		log.Printf("alert for frame %d throttled", a.Frame)
		t.listener.WhenThrottled()
		return ErrThrottled
	}
	return t.notifier.Notify(ctx, a)
}

// Close closes the wrapped notifier if it holds resources.
func (t *ThrottledNotifier) Close() {
	if c, ok := t.notifier.(interface{ Close() }); ok {
		c.Close()
	}
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

// Now implements Clock.Now by calling time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.Sleep by calling time.Sleep.
func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
