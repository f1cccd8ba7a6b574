package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/votuchankinh/thuvien/internal/db"
)

// Store persists exchanges.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Begin records a new exchange in the streaming state. If ex.ID is empty a
// UUID is generated. The stored exchange is returned.
func (s *Store) Begin(ctx context.Context, ex Exchange) (Exchange, error) {
	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	ex.Status = StatusStreaming
	ex.FinishedAt = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchanges (
			id, session_id, agent_id, language, question, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ex.ID,
		ex.SessionID,
		ex.AgentID,
		ex.Language,
		ex.Question,
		string(ex.Status),
		formatTime(ex.CreatedAt),
	)
	if err != nil {
		return Exchange{}, fmt.Errorf("inserting exchange: %w", err)
	}
	return ex, nil
}

// Finish stores the answer and outcome of an exchange.
func (s *Store) Finish(ctx context.Context, id, answer string, status Status, errMsg string, bytes int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE exchanges
		SET answer = ?, status = ?, error = ?, bytes = ?, finished_at = ?
		WHERE id = ?`,
		answer, string(status), errMsg, bytes, formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return fmt.Errorf("updating exchange %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get retrieves a single exchange.
func (s *Store) Get(ctx context.Context, id string) (*Exchange, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM exchanges WHERE id = ?`, id)
	ex, err := scanExchange(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ex, err
}

// Filter controls which exchanges List returns.
type Filter struct {
	SessionID string
	Status    Status
	Limit     int
	Offset    int
}

// List returns exchanges matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Exchange, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := "SELECT " + columns + " FROM exchanges"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, max(filter.Offset, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var out []Exchange
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ex)
	}
	return out, rows.Err()
}

const columns = `id, session_id, agent_id, language, question, answer, status, error, bytes, created_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanExchange(sc scanner) (*Exchange, error) {
	var (
		ex         Exchange
		status     string
		createdAt  string
		finishedAt sql.NullString
	)
	err := sc.Scan(
		&ex.ID, &ex.SessionID, &ex.AgentID, &ex.Language, &ex.Question,
		&ex.Answer, &status, &ex.Error, &ex.Bytes, &createdAt, &finishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning exchange: %w", err)
	}
	ex.Status = Status(status)
	if ex.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t, err := parseTime(finishedAt.String)
		if err != nil {
			return nil, err
		}
		ex.FinishedAt = &t
	}
	return &ex, nil
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
