package journal

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/disgoorg/json"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/utils"
	"github.com/sirupsen/logrus"
)

// Violation is a single journal entry.
type Violation struct {
	Entity    string
	Check     string
	Level     float64
	Delta     float64
	Distance  float64
	Tags      []string
	From, To  mgl64.Vec3
	Cancelled bool
	CreatedAt time.Time
}

// Recorder is a detection.Actions that writes every violation to the journal, together with whether the
// wrapped actions cancelled the move.
type Recorder struct {
	db   *sql.DB
	next detection.Actions
	log  *logrus.Logger
	now  func() time.Time
}

// NewRecorder wraps next, which decides whether moves are cancelled. A nil next cancels every move.
func NewRecorder(db *sql.DB, next detection.Actions, log *logrus.Logger) *Recorder {
	if next == nil {
		next = detection.CancelActions{}
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Recorder{db: db, next: next, log: log, now: time.Now}
}

// ExecuteViolationActions ...
func (r *Recorder) ExecuteViolationActions(data detection.ViolationData) bool {
	cancel := r.next.ExecuteViolationActions(data)
	v := Violation{
		Entity:    data.Entity,
		Check:     data.Check,
		Level:     data.Level,
		Delta:     data.Delta,
		Distance:  data.Distance,
		Tags:      data.Tags,
		From:      data.From,
		To:        data.To,
		Cancelled: cancel,
		CreatedAt: r.now(),
	}
	if err := r.Insert(context.Background(), v); err != nil {
		r.log.Errorf("journal: %v %s", err, utils.KeyValsToString([]any{"entity", v.Entity, "level", v.Level}))
	}
	return cancel
}

// Insert writes a violation to the journal.
func (r *Recorder) Insert(ctx context.Context, v Violation) error {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO violations (entity, check_name, level, delta, distance, tags_json,
			from_x, from_y, from_z, to_x, to_y, to_z, cancelled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, v.Entity, v.Check, v.Level, v.Delta, v.Distance, string(tagsJSON),
		v.From.X(), v.From.Y(), v.From.Z(), v.To.X(), v.To.Y(), v.To.Z(), v.Cancelled, v.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert violation: %w", err)
	}
	return nil
}
