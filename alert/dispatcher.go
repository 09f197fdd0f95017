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
	"sync"
	"time"

	"github.com/TheCacophonyProject/fall-detector/loglimiter"
	"github.com/TheCacophonyProject/fall-detector/motion"
)

const logInterval = 10 * time.Second

// Dispatcher hands fall events from the frame loop to the notifiers. Alerts
// are queued and delivered by a single goroutine so the frame loop never
// waits on a sink.
type Dispatcher struct {
	source    string
	notifiers []Notifier
	timeout   time.Duration
	queue     chan Alert
	log       *loglimiter.LogLimiter
	wg        sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

var _ motion.FallListener = (*Dispatcher)(nil)

// NewDispatcher starts a dispatcher for alerts raised on source. Each
// notifier gets at most timeout to deliver an alert.
func NewDispatcher(source string, queueSize int, timeout time.Duration, notifiers ...Notifier) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		source:    source,
		notifiers: notifiers,
		timeout:   timeout,
		queue:     make(chan Alert, queueSize),
		log:       loglimiter.New(logInterval),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// FallDetected queues an alert for the event. It doesn't block: if the
// queue is full the alert is dropped.
func (d *Dispatcher) FallDetected(e motion.FallEvent) {
	a := FromEvent(e, d.source)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("dispatcher closed, dropping alert for frame %d", a.Frame)
		return
	}
	select {
	case d.queue <- a:
	default:
		d.log.Printf("alert queue full, dropping alert for frame %d", a.Frame)
	}
}

// Close stops accepting alerts and waits for the queued ones to be
// delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for a := range d.queue {
		d.deliver(a)
	}
}

func (d *Dispatcher) deliver(a Alert) {
	log.Printf("sending fall alert: frame %d (%.2fs) from %s", a.Frame, a.Time, a.Source)
	for _, n := range d.notifiers {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := n.Notify(ctx, a)
		cancel()
		if err != nil {
			d.log.Printf("alert delivery failed: %v", err)
		}
	}
}
