package detection

import (
	"time"

	"github.com/oomph-ac/survivalfly/movement"
)

// ViolationAccumulator turns violation scores into a violation level on the state of an entity and
// runs the action pipeline for them. It is shared by everything that can flag the same check.
type ViolationAccumulator struct {
	Check string
	// Decay is the factor the level is multiplied with on every legitimate move once Freeze has
	// passed since the last violation.
	Decay  float64
	Freeze time.Duration
}

// Record adds data.Delta to the violation level and executes the violation actions. It returns true
// if the move that caused the violation should be cancelled.
func (a ViolationAccumulator) Record(st *movement.State, data ViolationData, actions Actions, now time.Time) bool {
	st.Violations += data.Delta
	st.LastFlagged = now

	data.Check = a.Check
	data.Level = st.Violations
	return actions.ExecuteViolationActions(data)
}

// Cool decays the violation level if no violation was recorded within the freeze window.
func (a ViolationAccumulator) Cool(st *movement.State, now time.Time) {
	if now.Sub(st.LastFlagged) > a.Freeze {
		st.Violations *= a.Decay
	}
}
