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

package alertserver

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS alerts (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	frame INTEGER NOT NULL,
	time REAL NOT NULL,
	source TEXT NOT NULL,
	received_at TEXT NOT NULL
)`

// SQLiteStore keeps alerts in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening alert database %s", path)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating alerts table")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, a StoredAlert) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alerts (id, frame, time, source, received_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Frame, a.Time, a.Source, a.ReceivedAt.Format(time.RFC3339Nano))
	return errors.Wrap(err, "saving alert")
}

func (s *SQLiteStore) Last(ctx context.Context) (*StoredAlert, error) {
	alerts, err := s.Recent(ctx, 1)
	if err != nil || len(alerts) == 0 {
		return nil, err
	}
	return &alerts[0], nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]StoredAlert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, frame, time, source, received_at FROM alerts ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying alerts")
	}
	defer rows.Close()

	var alerts []StoredAlert
	for rows.Next() {
		var a StoredAlert
		var receivedAt string
		if err := rows.Scan(&a.ID, &a.Frame, &a.Time, &a.Source, &receivedAt); err != nil {
			return nil, errors.Wrap(err, "reading alert")
		}
		if a.ReceivedAt, err = time.Parse(time.RFC3339Nano, receivedAt); err != nil {
			return nil, errors.Wrapf(err, "alert %s has a bad received_at", a.ID)
		}
		alerts = append(alerts, a)
	}
	return alerts, errors.Wrap(rows.Err(), "reading alerts")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
