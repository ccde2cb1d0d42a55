package punishment

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/game"
	"github.com/oomph-ac/survivalfly/utils"
	"github.com/sirupsen/logrus"
)

// DefaultRemoveMessage is handed to the Handler when an entity is removed.
const DefaultRemoveMessage = "Unfair advantage: flying or moving too fast."

// Threshold holds the punishments that apply once the violation level exceeds Level.
type Threshold struct {
	Level       float64
	Punishments []Punishment
}

// Handler is notified of punishments that remove an entity. Returning false vetoes the removal.
type Handler interface {
	HandlePunishment(entity string, p Punishment, message *string) bool
}

// NopHandler lets every removal through without doing anything.
type NopHandler struct{}

// HandlePunishment ...
func (NopHandler) HandlePunishment(string, Punishment, *string) bool { return true }

// List is a violation action list. Only the punishments of the highest threshold below the violation
// level are executed.
type List struct {
	thresholds []Threshold
	log        *logrus.Logger
	h          Handler
}

// DefaultThresholds returns the action list used when none is configured.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Level: 0, Punishments: []Punishment{Cancel()}},
		{Level: 100, Punishments: []Punishment{Log(), Cancel()}},
		{Level: 400, Punishments: []Punishment{Log(), Cancel()}},
		{Level: 1300, Punishments: []Punishment{Log(), Cancel(), Kick()}},
	}
}

// NewList creates an action list. A nil logger discards log punishments and a nil handler lets every
// removal through.
func NewList(thresholds []Threshold, log *logrus.Logger, h Handler) *List {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if h == nil {
		h = NopHandler{}
	}
	t := make([]Threshold, len(thresholds))
	copy(t, thresholds)
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Level > t[j].Level
	})
	return &List{thresholds: t, log: log, h: h}
}

// Thresholds returns the thresholds of the list, highest first.
func (l *List) Thresholds() []Threshold {
	return l.thresholds
}

// Applicable returns the punishments that apply to the violation level passed.
func (l *List) Applicable(level float64) []Punishment {
	for _, t := range l.thresholds {
		if level > t.Level {
			return t.Punishments
		}
	}
	return nil
}

// ExecuteViolationActions ...
func (l *List) ExecuteViolationActions(data detection.ViolationData) (cancel bool) {
	for _, p := range l.Applicable(data.Level) {
		switch p {
		case Cancel():
			cancel = true
		case Log():
			l.log.Warnf("%s flagged %s (%s) <x%.2f> %s", data.Entity, data.Check, strings.Join(data.Tags, "+"), game.Round64(data.Level, 2), utils.OrderedMapToString(extraData(data)))
		case Kick(), Ban():
			message := DefaultRemoveMessage
			if !l.h.HandlePunishment(data.Entity, p, &message) {
				continue
			}
			l.log.Warnf("%s was removed from the server for usage of third-party modifications (%s-%s).", data.Entity, data.Check, p)
		}
	}
	return cancel
}

func extraData(data detection.ViolationData) *orderedmap.OrderedMap[string, any] {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("delta", game.Round64(data.Delta, 2))
	m.Set("from", vecString(data.From))
	m.Set("to", vecString(data.To))
	m.Set("dist", game.Round64(data.Distance, 4))
	return m
}

func vecString(v mgl64.Vec3) string {
	return fmt.Sprintf("%.2f,%.2f,%.2f", v[0], v[1], v[2])
}
