package survivalfly

import (
	"sync"
	"testing"
	"time"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/movement"
	"github.com/oomph-ac/survivalfly/world"
	"github.com/stretchr/testify/require"
)

func flatEnv() detection.Environment {
	src := world.NewMapSource()
	src.Fill(cube.Pos{-16, 63, -16}, cube.Pos{16, 63, 16}, block.Stone{})
	return detection.Environment{Geometry: world.NewBlockGeometry(src)}
}

func TestJoinAndQuit(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions()})
	defer tr.Close()

	id := uuid.New()
	require.False(t, tr.Tracked(id))
	tr.Join(id, mgl64.Vec3{0.5, 64, 0.5})
	require.True(t, tr.Tracked(id))
	require.Equal(t, 1, tr.Len())

	require.True(t, tr.State(id, func(st *movement.State) {
		require.True(t, st.JoinOrRespawn)
		require.Equal(t, mgl64.Vec3{0.5, 64, 0.5}, st.SetBack())
	}))

	tr.Quit(id)
	require.False(t, tr.Tracked(id))
	require.False(t, tr.State(id, func(*movement.State) {}))
}

func TestValidateAfterQuit(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions()})
	defer tr.Close()

	id := uuid.New()
	e := tr.join(id, mgl64.Vec3{0.5, 64, 0.5})
	tr.Quit(id)

	// A move that was waiting for the entity while it quit is dropped.
	res := tr.validate(e, movement.Loc(0.5, 64, 0.5), movement.Loc(0.5, 65.5, 0.5), movement.Input{}, flatEnv(), time.Now())
	require.Equal(t, detection.OutcomeAccept, res.Outcome)
	require.Zero(t, res.Score)
	require.Zero(t, e.st.Tick)
	require.False(t, tr.Tracked(id))
}

func TestValidateTracksUnknownEntities(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions()})
	defer tr.Close()

	id := uuid.New()
	from, to := movement.Loc(0.5, 64, 0.5), movement.Loc(0.5, 65.5, 0.5)
	res := tr.Validate(id, from, to, movement.Input{}, flatEnv(), time.Now())
	require.Equal(t, detection.OutcomeCorrect, res.Outcome)
	require.Equal(t, from.Pos, res.SetBack.Pos)
	require.True(t, tr.Tracked(id))
}

func TestAddVelocityGrantsFreedom(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions()})
	defer tr.Close()

	id := uuid.New()
	tr.Join(id, mgl64.Vec3{0.5, 64, 0.5})
	tr.AddVelocity(id, mgl64.Vec3{0, 0, 0.6})

	res := tr.Validate(id, movement.Loc(0.5, 64, 0.5), movement.Loc(0.5, 64, 1.2), movement.Input{}, flatEnv(), time.Now())
	require.Equal(t, detection.OutcomeAccept, res.Outcome)
	require.True(t, res.HasTag("hvel"))
}

func TestNotificationsUpdateState(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions()})
	defer tr.Close()

	id := uuid.New()
	now := time.Now()
	tr.Join(id, mgl64.Vec3{0.5, 64, 0.5})
	tr.SetReallySneaking(id, true)
	tr.Sprinted(id, now)
	tr.LostSprint(id)
	tr.SetWalkSpeed(id, 0.3)
	tr.Teleport(id, mgl64.Vec3{5, 70, 5})

	tr.State(id, func(st *movement.State) {
		require.True(t, st.ReallySneaking)
		require.Equal(t, now, st.LastSprint)
		require.Equal(t, 3, st.LostSprintCount)
		require.Equal(t, 0.3, st.WalkSpeed)
		require.Equal(t, mgl64.Vec3{5, 70, 5}, st.SetBack())
	})
}

func TestSubmitRunsOnWorkers(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions(), Workers: 4})

	ids := make([]uuid.UUID, 32)
	for i := range ids {
		ids[i] = uuid.New()
		tr.Join(ids[i], mgl64.Vec3{0.5, 64, 0.5})
	}

	var (
		mu    sync.Mutex
		ticks = map[uuid.UUID]int{}
	)
	for n := 0; n < 10; n++ {
		for _, id := range ids {
			id := id
			require.True(t, tr.Submit(id, func() {
				tr.State(id, func(st *movement.State) {
					st.Tick++
				})
				mu.Lock()
				ticks[id]++
				mu.Unlock()
			}))
		}
	}
	tr.Close()
	require.False(t, tr.Submit(ids[0], func() {}))

	for _, id := range ids {
		require.Equal(t, 10, ticks[id])
		tr.State(id, func(st *movement.State) {
			require.EqualValues(t, 10, st.Tick)
		})
	}
}

func TestSubmitPanicDropsEntity(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions(), Workers: 1})

	id := uuid.New()
	tr.Join(id, mgl64.Vec3{})
	tr.Submit(id, func() {
		panic("boom")
	})
	tr.Close()
	require.False(t, tr.Tracked(id))
}

func TestHover(t *testing.T) {
	tr := New(Config{Options: detection.DefaultOptions()})
	defer tr.Close()

	id := uuid.New()
	tr.Join(id, mgl64.Vec3{0.5, 64, 0.5})
	res := tr.Hover(id, movement.Loc(0.5, 70, 0.5), detection.Environment{}, time.Now())
	require.Equal(t, detection.OutcomeCorrect, res.Outcome)
	require.Equal(t, mgl64.Vec3{0.5, 64, 0.5}, res.SetBack.Pos)
}
