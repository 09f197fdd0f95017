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

// Package alertserver receives fall alerts over HTTP, stores them and
// pushes them to connected dashboards.
package alertserver

import (
	"context"
	"sync"
	"time"
)

// receivedAtFormat matches the second resolution timestamps shown on the
// dashboard.
const receivedAtFormat = "2006-01-02T15:04:05"

// StoredAlert is an alert as kept by the server.
type StoredAlert struct {
	ID         string    `json:"id"`
	Frame      int       `json:"frame"`
	Time       float64   `json:"time"`
	Source     string    `json:"source"`
	ReceivedAt time.Time `json:"-"`
}

// Store persists alerts. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, a StoredAlert) error
	// Last returns the most recent alert, or nil if there are none.
	Last(ctx context.Context) (*StoredAlert, error)
	// Recent returns up to limit alerts, newest first.
	Recent(ctx context.Context, limit int) ([]StoredAlert, error)
	Close() error
}

// MemoryStore keeps the most recent alerts in memory.
type MemoryStore struct {
	mu     sync.Mutex
	size   int
	alerts []StoredAlert
}

// NewMemoryStore keeps at most size alerts.
func NewMemoryStore(size int) *MemoryStore {
	if size < 1 {
		size = 1
	}
	return &MemoryStore{size: size}
}

func (s *MemoryStore) Save(ctx context.Context, a StoredAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	if len(s.alerts) > s.size {
		s.alerts = s.alerts[len(s.alerts)-s.size:]
	}
	return nil
}

func (s *MemoryStore) Last(ctx context.Context) (*StoredAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) == 0 {
		return nil, nil
	}
	a := s.alerts[len(s.alerts)-1]
	return &a, nil
}

func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]StoredAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredAlert, 0, min(limit, len(s.alerts)))
	for i := len(s.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.alerts[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
