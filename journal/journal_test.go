package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/stretchr/testify/require"
)

type allowActions struct{}

func (allowActions) ExecuteViolationActions(detection.ViolationData) bool { return false }

func TestRecorderWritesViolations(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer db.Close()

	base := time.UnixMilli(1_700_000_000_000)
	r := NewRecorder(db, nil, nil)
	r.now = func() time.Time { return base }

	data := detection.ViolationData{
		Entity: "steve",
		Check:  detection.CheckName,
		Level:  15,
		Delta:  15,
		From:   mgl64.Vec3{0.5, 64, 0.5},
		To:     mgl64.Vec3{0.5, 65.5, 0.5},
		Tags:   []string{"vdist"},
	}
	require.True(t, r.ExecuteViolationActions(data))

	r.next = allowActions{}
	r.now = func() time.Time { return base.Add(time.Second) }
	data.Level, data.Tags = 30, nil
	require.False(t, r.ExecuteViolationActions(data))

	require.False(t, r.ExecuteViolationActions(detection.ViolationData{Entity: "alex", Check: detection.CheckName}))

	reader := NewReader(db)
	v, err := reader.Recent(ctx, "steve", 10)
	require.NoError(t, err)
	require.Len(t, v, 2)

	require.Equal(t, 30.0, v[0].Level)
	require.Empty(t, v[0].Tags)
	require.False(t, v[0].Cancelled)
	require.Equal(t, base.Add(time.Second), v[0].CreatedAt)

	require.Equal(t, []string{"vdist"}, v[1].Tags)
	require.True(t, v[1].Cancelled)
	require.Equal(t, mgl64.Vec3{0.5, 65.5, 0.5}, v[1].To)

	n, err := reader.Count(ctx, "alex")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	v, err = reader.Recent(ctx, "steve", 1)
	require.NoError(t, err)
	require.Len(t, v, 1)
}
