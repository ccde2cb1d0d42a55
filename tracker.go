package survivalfly

import (
	"io"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/movement"
	"github.com/oomph-ac/survivalfly/oerror"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// DefaultShards is the amount of shards used when none is configured.
const DefaultShards = 16

// Config holds the settings of a Tracker.
type Config struct {
	Options detection.Options
	Log     *logrus.Logger
	// Shards is the amount of registry shards entities are spread over.
	Shards int
	// Workers is the size of the worker pool Submit runs work on. Zero disables the pool and runs
	// submitted work on the calling goroutine.
	Workers int
}

// Tracker owns the movement state of every tracked entity. Moves of a single entity are validated one
// at a time, different entities may be validated in parallel.
type Tracker struct {
	check *detection.SurvivalFly
	opts  detection.Options
	log   *logrus.Logger

	shards []*shard

	queue   chan func()
	workers sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
}

type shard struct {
	mu       deadlock.RWMutex
	entities map[uuid.UUID]*entity
}

type entity struct {
	mu deadlock.Mutex
	st *movement.State
	// gone is set once the entity quit, so work queued before that is dropped.
	gone bool
}

// New creates a Tracker from the config passed.
func New(conf Config) *Tracker {
	if conf.Log == nil {
		conf.Log = logrus.New()
		conf.Log.SetOutput(io.Discard)
	}
	if conf.Shards <= 0 {
		conf.Shards = DefaultShards
	}

	t := &Tracker{
		check:  detection.NewSurvivalFly(conf.Options, conf.Log),
		opts:   conf.Options,
		log:    conf.Log,
		shards: make([]*shard, conf.Shards),
	}
	for i := range t.shards {
		t.shards[i] = &shard{entities: make(map[uuid.UUID]*entity)}
	}
	if conf.Workers > 0 {
		t.queue = make(chan func(), conf.Workers)
		t.workers.Add(conf.Workers)
		for i := 0; i < conf.Workers; i++ {
			go t.worker()
		}
	}
	return t
}

func (t *Tracker) shard(id uuid.UUID) *shard {
	return t.shards[xxh3.Hash(id[:])%uint64(len(t.shards))]
}

func (t *Tracker) entity(id uuid.UUID) (*entity, bool) {
	s := t.shard(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	return e, ok
}

// Join starts tracking an entity at pos. An entity that is already tracked is treated as respawning.
func (t *Tracker) Join(id uuid.UUID, pos mgl64.Vec3) {
	t.join(id, pos)
}

func (t *Tracker) join(id uuid.UUID, pos mgl64.Vec3) *entity {
	s := t.shard(id)
	s.mu.Lock()
	e, ok := s.entities[id]
	if !ok {
		e = &entity{st: movement.NewState(pos)}
		s.entities[id] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	e.st.Respawn(pos)
	e.mu.Unlock()
	return e
}

// Respawn resets the state of an entity after it respawned at pos.
func (t *Tracker) Respawn(id uuid.UUID, pos mgl64.Vec3) {
	t.Join(id, pos)
}

// Quit stops tracking an entity.
func (t *Tracker) Quit(id uuid.UUID) {
	s := t.shard(id)
	s.mu.Lock()
	e, ok := s.entities[id]
	delete(s.entities, id)
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.gone = true
		e.mu.Unlock()
	}
}

// Tracked returns true if the entity is tracked.
func (t *Tracker) Tracked(id uuid.UUID) bool {
	_, ok := t.entity(id)
	return ok
}

// Len returns the amount of tracked entities.
func (t *Tracker) Len() (n int) {
	for _, s := range t.shards {
		s.mu.RLock()
		n += len(s.entities)
		s.mu.RUnlock()
	}
	return n
}

// Validate validates a move of an entity. Untracked entities start being tracked at from. If env carries
// no entity name, the id is used.
func (t *Tracker) Validate(id uuid.UUID, from, to movement.Location, in movement.Input, env detection.Environment, now time.Time) detection.Result {
	e, ok := t.entity(id)
	if !ok {
		e = t.join(id, from.Pos)
	}
	if env.Entity == "" {
		env.Entity = id.String()
	}

	return t.validate(e, from, to, in, env, now)
}

// validate validates a move against the state of e. Moves of an entity that quit while waiting for its
// lock are accepted without being validated.
func (t *Tracker) validate(e *entity, from, to movement.Location, in movement.Input, env detection.Environment, now time.Time) detection.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return detection.Result{}
	}
	return t.check.Check(e.st, from, to, in, env, now)
}

// Hover adds a hover violation for an entity that stayed in the air for too long.
func (t *Tracker) Hover(id uuid.UUID, at movement.Location, env detection.Environment, now time.Time) detection.Result {
	if env.Entity == "" {
		env.Entity = id.String()
	}
	var res detection.Result
	t.with(id, func(st *movement.State) {
		res = t.check.HandleHover(st, at, env, now)
	})
	return res
}

// AddVelocity queues knockback or other external velocity for an entity.
func (t *Tracker) AddVelocity(id uuid.UUID, vel mgl64.Vec3) {
	t.with(id, func(st *movement.State) {
		st.Velocity.Add(st.Tick, vel, t.opts.VelocityGraceTicks)
	})
}

// Teleport applies a teleport or set-back of an entity to pos.
func (t *Tracker) Teleport(id uuid.UUID, pos mgl64.Vec3) {
	t.with(id, func(st *movement.State) {
		st.Teleport(pos)
	})
}

// SetReallySneaking records whether an entity toggled sneaking itself.
func (t *Tracker) SetReallySneaking(id uuid.UUID, sneaking bool) {
	t.with(id, func(st *movement.State) {
		st.ReallySneaking = sneaking
	})
}

// Sprinted records that an entity was seen sprinting at the time passed.
func (t *Tracker) Sprinted(id uuid.UUID, now time.Time) {
	t.with(id, func(st *movement.State) {
		st.LastSprint = now
	})
}

// LostSprint records that the sprinting state of an entity was dropped by the server, for example
// because of hunger. Sprint speed stays allowed for a few moves after.
func (t *Tracker) LostSprint(id uuid.UUID) {
	t.with(id, func(st *movement.State) {
		st.LostSprintCount = 3
	})
}

// SetWalkSpeed records the movement speed attribute of an entity.
func (t *Tracker) SetWalkSpeed(id uuid.UUID, speed float64) {
	t.with(id, func(st *movement.State) {
		st.WalkSpeed = speed
	})
}

// State runs f with the state of an entity while holding its lock. It returns false if the entity is
// not tracked.
func (t *Tracker) State(id uuid.UUID, f func(st *movement.State)) bool {
	return t.with(id, f)
}

func (t *Tracker) with(id uuid.UUID, f func(st *movement.State)) bool {
	e, ok := t.entity(id)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return false
	}
	f(e.st)
	return true
}

// Submit runs f on the worker pool on behalf of an entity. If f panics, the panic is reported and the
// entity stops being tracked. Work submitted for the same entity is not ordered, callers that need
// ordering submit a single job per entity. Submit blocks while all workers are busy, and returns false
// if the tracker was closed.
func (t *Tracker) Submit(id uuid.UUID, f func()) bool {
	job := func() {
		defer t.recover(id)
		f()
	}

	t.closeMu.RLock()
	defer t.closeMu.RUnlock()
	if t.closed {
		return false
	}
	if t.queue == nil {
		job()
		return true
	}
	t.queue <- job
	return true
}

func (t *Tracker) worker() {
	defer t.workers.Done()
	for job := range t.queue {
		job()
	}
}

func (t *Tracker) recover(id uuid.UUID) {
	if err := recover(); err != nil {
		t.log.Errorf("%s: worker panic: %v", id, err)
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("entity", id.String())
		})
		hub.Recover(oerror.New("survivalfly worker crashed: %v", err))
		hub.Flush(time.Second * 5)

		t.Quit(id)
	}
}

// Close waits for submitted work to finish and stops the worker pool.
func (t *Tracker) Close() {
	t.closeMu.Lock()
	if t.closed {
		t.closeMu.Unlock()
		return
	}
	t.closed = true
	if t.queue != nil {
		close(t.queue)
	}
	t.closeMu.Unlock()
	t.workers.Wait()
}
