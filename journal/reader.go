package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/disgoorg/json"
	"github.com/go-gl/mathgl/mgl64"
)

// Reader reads violations back from the journal.
type Reader struct {
	db *sql.DB
}

// NewReader creates a new journal reader.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Recent returns the latest violations of an entity, newest first.
func (r *Reader) Recent(ctx context.Context, entity string, limit int) ([]Violation, error) {
	query := `
		SELECT entity, check_name, level, delta, distance, tags_json,
		       from_x, from_y, from_z, to_x, to_y, to_z, cancelled, created_at
		FROM violations
		WHERE entity = ?
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, entity, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	violations := make([]Violation, 0, limit)
	for rows.Next() {
		var (
			v         Violation
			tagsJSON  string
			from, to  mgl64.Vec3
			createdAt int64
		)
		if err := rows.Scan(&v.Entity, &v.Check, &v.Level, &v.Delta, &v.Distance, &tagsJSON,
			&from[0], &from[1], &from[2], &to[0], &to[1], &to[2], &v.Cancelled, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &v.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
		v.From, v.To = from, to
		v.CreatedAt = time.UnixMilli(createdAt)
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

// Count returns the amount of violations recorded for an entity.
func (r *Reader) Count(ctx context.Context, entity string) (n int, err error) {
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM violations WHERE entity = ?", entity).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count violations: %w", err)
	}
	return n, nil
}
