package session

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/oomph-ac/survivalfly"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/event"
	"github.com/oomph-ac/survivalfly/utils"
	"github.com/oomph-ac/survivalfly/world"
	"github.com/sirupsen/logrus"
)

// ReplayConfig configures a replay.
type ReplayConfig struct {
	Tracker     *survivalfly.Tracker
	Actions     detection.Actions
	Permissions func(id uuid.UUID) detection.Permissions
	Log         *logrus.Logger
}

// Replay replays a recording. Block events build the world every entity moves in, all other events are
// handed to a session per entity. Entities are replayed in parallel on the tracker's worker pool, the
// events of a single entity in recording order. The sessions are returned in order of appearance.
func Replay(rec *Recording, conf ReplayConfig) ([]*Session, error) {
	if conf.Log == nil {
		conf.Log = logrus.New()
		conf.Log.SetOutput(io.Discard)
	}
	src := world.NewMapSource()
	byEntity := make(map[uuid.UUID][]event.Event)
	var order []uuid.UUID

	for _, ev := range rec.Events {
		if b, ok := ev.(event.BlockEvent); ok {
			bl, ok := world.BlockByName(b.Name, b.Properties)
			if !ok {
				conf.Log.Warnf("replay: unknown block %s", utils.KeyValsToString([]any{"name", b.Name, "pos", b.Pos}))
				continue
			}
			src.SetBlock(b.Pos, bl)
			continue
		}
		id := ev.Entity()
		if _, ok := byEntity[id]; !ok {
			order = append(order, id)
		}
		byEntity[id] = append(byEntity[id], ev)
	}

	geo := world.NewBlockGeometry(src)
	sessions := make([]*Session, len(order))
	errs := make([]error, len(order))

	var wg sync.WaitGroup
	for i, id := range order {
		env := detection.Environment{Geometry: geo, Actions: conf.Actions}
		if conf.Permissions != nil {
			env.Permissions = conf.Permissions(id)
		}
		s := New(id, conf.Tracker, env, conf.Log)
		sessions[i] = s

		wg.Add(1)
		events := byEntity[id]
		if !conf.Tracker.Submit(id, func() {
			defer wg.Done()
			for _, ev := range events {
				if err := s.HandleEvent(ev); err != nil {
					errs[i] = err
					return
				}
			}
		}) {
			wg.Done()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return sessions, err
		}
	}
	return sessions, nil
}
