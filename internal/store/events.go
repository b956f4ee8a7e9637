// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, user_id, metadata, created_at
`

// CreateEventParams holds the arguments for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts a new event log entry and returns the stored row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level,
		arg.Category,
		arg.Message,
		arg.UserID,
		arg.Metadata,
		arg.CreatedAt,
	)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt)
	return e, err
}

const getEvent = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events
WHERE id = ?
`

// GetEvent returns a single event by id.
func (q *Queries) GetEvent(ctx context.Context, id int64) (Event, error) {
	row := q.db.QueryRowContext(ctx, getEvent, id)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListEventsParams holds the arguments for ListEvents.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

// ListEvents returns a page of events, newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

const countEvents = `
SELECT COUNT(*) FROM events
`

// CountEvents returns the total number of event log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEvents)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteEventsBefore = `
DELETE FROM events
WHERE created_at < ?
`

// DeleteEventsBefore removes events created before cutoff and reports how
// many rows were deleted. Used by the retention scheduler.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
