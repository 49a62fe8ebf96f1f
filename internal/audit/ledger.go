package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/promptguard/internal/db"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/google/uuid"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Kind distinguishes single-payload checks from conversation checks.
type Kind string

const (
	KindOperation    Kind = "operation"
	KindConversation Kind = "conversation"
)

// Entry is one recorded verdict.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Source    string
	Kind      Kind
	Operation string
	Model     string
	Risk      guard.Risk
	Reasons   []string
	Actions   []guard.Action
	LatencyMs int64
}

// Filter narrows ListRecent. Zero values mean no restriction; Limit
// defaults to 50.
type Filter struct {
	Limit int
	Risk  guard.Risk
}

// Recorder appends verdicts to a ledger.
type Recorder interface {
	Record(ctx context.Context, e *Entry) error
}

// Reader queries recorded verdicts.
type Reader interface {
	ListRecent(ctx context.Context, f Filter) ([]*Entry, error)
	CountByRisk(ctx context.Context) (map[guard.Risk]int, error)
}

// SQLiteLedger implements Recorder and Reader on a SQLite database.
type SQLiteLedger struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteLedger creates a ledger over an opened, migrated database.
func NewSQLiteLedger(database db.DBTX) *SQLiteLedger {
	return &SQLiteLedger{db: database, now: time.Now}
}

// Record stores e, assigning an ID and timestamp when they are unset.
func (l *SQLiteLedger) Record(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = l.now().UTC()
	}
	if e.Kind == "" {
		e.Kind = KindOperation
	}

	reasons, err := json.Marshal(nonNil(e.Reasons))
	if err != nil {
		return fmt.Errorf("encoding reasons: %w", err)
	}
	actions, err := json.Marshal(nonNil(e.Actions))
	if err != nil {
		return fmt.Errorf("encoding actions: %w", err)
	}

	query := `INSERT INTO verdicts (id, created_at, source, kind, operation, model, risk, reasons, actions, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = l.db.ExecContext(ctx, query,
		e.ID,
		e.CreatedAt.UTC().Format(timeLayout),
		e.Source,
		string(e.Kind),
		e.Operation,
		e.Model,
		string(e.Risk),
		string(reasons),
		string(actions),
		e.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("inserting verdict: %w", err)
	}
	return nil
}

// ListRecent returns verdicts newest first.
func (l *SQLiteLedger) ListRecent(ctx context.Context, f Filter) ([]*Entry, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, created_at, source, kind, operation, model, risk, reasons, actions, latency_ms
		FROM verdicts`
	args := []any{}
	if f.Risk != "" {
		query += ` WHERE risk = ?`
		args = append(args, string(f.Risk))
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing verdicts: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// CountByRisk tallies recorded verdicts per risk tier. Verdicts without
// a determined risk are counted under the empty tier.
func (l *SQLiteLedger) CountByRisk(ctx context.Context) (map[guard.Risk]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT risk, COUNT(*) FROM verdicts GROUP BY risk`)
	if err != nil {
		return nil, fmt.Errorf("counting verdicts: %w", err)
	}
	defer rows.Close()

	counts := make(map[guard.Risk]int)
	for rows.Next() {
		var risk string
		var n int
		if err := rows.Scan(&risk, &n); err != nil {
			return nil, fmt.Errorf("scanning verdict count: %w", err)
		}
		counts[guard.Risk(risk)] = n
	}
	return counts, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var (
			e                        Entry
			createdAt, kind, risk    string
			reasonsJSON, actionsJSON string
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Source, &kind, &e.Operation, &e.Model, &risk,
			&reasonsJSON, &actionsJSON, &e.LatencyMs); err != nil {
			return nil, fmt.Errorf("scanning verdict: %w", err)
		}
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}
		e.CreatedAt = t
		e.Kind = Kind(kind)
		e.Risk = guard.Risk(risk)
		if err := json.Unmarshal([]byte(reasonsJSON), &e.Reasons); err != nil {
			return nil, fmt.Errorf("decoding reasons: %w", err)
		}
		if err := json.Unmarshal([]byte(actionsJSON), &e.Actions); err != nil {
			return nil, fmt.Errorf("decoding actions: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
