package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"secure_notes/internal/models"

	"github.com/google/uuid"
)

// ActivitySQLite stores the per-user audit trail. Rows are never updated or deleted.
type ActivitySQLite struct {
	db *sql.DB
}

func NewActivitySQLite(db *sql.DB) *ActivitySQLite { return &ActivitySQLite{db: db} }

var _ ActivityRepo = (*ActivitySQLite)(nil)

const (
	insertActivitySQL = `
		INSERT INTO activity_events (id, user_id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectActivitySQL = `SELECT id, user_id, occurred_at, type, message, meta FROM activity_events`
)

// Append stores e for its user. A missing id or timestamp is generated.
func (r *ActivitySQLite) Append(ctx context.Context, e models.ActivityEvent) error {
	id := e.EventID
	if id == "" {
		id = uuid.NewString()
	}
	at := e.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	meta, err := encodeMeta(e.Metadata)
	if err != nil {
		return fmt.Errorf("encode %s metadata: %w", e.Type, err)
	}

	if _, err := r.db.ExecContext(ctx, insertActivitySQL,
		id, e.UserID, formatTime(at), eventType(e.Type), e.Description, meta,
	); err != nil {
		return fmt.Errorf("append activity for user %d: %w", e.UserID, err)
	}
	return nil
}

// List returns userID's events, oldest first. Zero bounds and an empty type do not filter.
func (r *ActivitySQLite) List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	q := newActivityQuery(userID)
	if !from.IsZero() {
		q.where("occurred_at >= ?", formatTime(from))
	}
	if !to.IsZero() {
		q.where("occurred_at <= ?", formatTime(to))
	}
	if typ = eventType(typ); typ != "" {
		q.where("type = ?", typ)
	}

	rows, err := r.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity for user %d: %w", userID, err)
	}
	defer rows.Close()

	var events []models.ActivityEvent
	for rows.Next() {
		ev, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.ActivityEvent{}
	}
	return events, nil
}

// activityQuery always starts scoped to one user; other filters are ANDed on.
type activityQuery struct {
	conds []string
	args  []any
}

func newActivityQuery(userID int) *activityQuery {
	return &activityQuery{conds: []string{"user_id = ?"}, args: []any{userID}}
}

func (q *activityQuery) where(cond string, arg any) {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, arg)
}

func (q *activityQuery) String() string {
	return selectActivitySQL + " WHERE " + strings.Join(q.conds, " AND ") + " ORDER BY occurred_at ASC, id ASC"
}

func scanActivity(row interface{ Scan(dest ...any) error }) (models.ActivityEvent, error) {
	var (
		ev   models.ActivityEvent
		meta sql.NullString
	)
	if err := row.Scan(&ev.EventID, &ev.UserID, &ev.OccurredAt, &ev.Type, &ev.Description, &meta); err != nil {
		return models.ActivityEvent{}, fmt.Errorf("scan activity: %w", err)
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	ev.Metadata = decodeMeta(meta)
	return ev, nil
}

func eventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// encodeMeta stores nil metadata as SQL NULL.
func encodeMeta(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// decodeMeta falls back to the stored text when it is not valid JSON.
func decodeMeta(ns sql.NullString) any {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var v any
	if json.Unmarshal([]byte(ns.String), &v) != nil {
		return ns.String
	}
	return v
}
