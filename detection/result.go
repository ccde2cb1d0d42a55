package detection

import (
	"strings"

	"github.com/oomph-ac/survivalfly/movement"
)

// Outcome is the verdict on a single move.
type Outcome uint8

const (
	// OutcomeAccept lets the move through.
	OutcomeAccept Outcome = iota
	// OutcomeCorrect rejects the move and sends the entity back to Result.SetBack.
	OutcomeCorrect
	// OutcomeSilentCorrect sends the entity back to Result.SetBack without any violation being
	// recorded.
	OutcomeSilentCorrect
)

// String ...
func (o Outcome) String() string {
	switch o {
	case OutcomeAccept:
		return "accept"
	case OutcomeCorrect:
		return "correct"
	case OutcomeSilentCorrect:
		return "silent_correct"
	}
	return "unknown"
}

// Result holds the outcome of a validation and the figures that led to it.
type Result struct {
	Outcome Outcome
	// SetBack is the location the entity has to be moved to for Correct and SilentCorrect outcomes.
	SetBack movement.Location

	HDistance float64
	HAllowed  float64
	HExcess   float64
	// HFreedom is the horizontal distance covered by velocity credits.
	HFreedom float64

	YDistance float64
	VAllowed  float64
	VExcess   float64

	// Score is the violation level added by the move, Violations the level after adding it.
	Score      float64
	Violations float64

	// Tags are the identifiers of the rules that applied to the move, in the order they applied.
	Tags []string
}

// Accepted ...
func (r Result) Accepted() bool {
	return r.Outcome == OutcomeAccept
}

// HasTag ...
func (r Result) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagString joins the tags the way they are logged.
func (r Result) TagString() string {
	return strings.Join(r.Tags, "+")
}
