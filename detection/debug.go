package detection

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/survivalfly/game"
	"github.com/oomph-ac/survivalfly/utils"
)

// debug logs the trace of a validated move. It only reads from the state.
func (s *SurvivalFly) debug(c *moveCheck, res Result) {
	st := c.st
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("from", game.RoundVec64(c.from.pos(), 3))
	data.Set("to", game.RoundVec64(c.to.pos(), 3))
	data.Set("ground", groundTrace(c))
	data.Set("jumpPhase", st.JumpPhase)
	data.Set("hDist", game.Round64(res.HDistance, 3))
	data.Set("hAllowed", game.Round64(res.HAllowed, 3))
	if st.HorizontalBuffer < game.HorizontalBufferMax {
		data.Set("hBuf", game.Round64(st.HorizontalBuffer, 3))
	}
	if st.LostSprintCount > 0 {
		data.Set("lostSprint", st.LostSprintCount)
	}
	if res.HFreedom > 0 {
		data.Set("hVelUsed", game.Round64(res.HFreedom, 3))
	}
	data.Set("vDist", game.Round64(res.YDistance, 3))
	data.Set("sbDist", game.Round64(c.to.y()-st.SetBack().Y(), 3))
	data.Set("vAllowed", game.Round64(res.VAllowed, 3))
	if f := st.Velocity.VerticalFreedom(); f > 0 {
		data.Set("vFreedom", game.Round64(f, 3))
	}
	if !c.resetFrom && !c.resetTo && c.opts.VerticalAccounting && st.Accounting.Count() > 3 {
		data.Set("vacc", st.Accounting.String())
	}
	data.Set("outcome", res.Outcome)
	if len(res.Tags) > 0 {
		data.Set("tags", res.TagString())
	}
	s.log.Debugf("%s %s %s", c.env.Entity, CheckName, utils.OrderedMapToString(data))
}

func groundTrace(c *moveCheck) string {
	endpoint := func(onGround, reset bool) string {
		switch {
		case onGround:
			return "onground"
		case reset:
			return "resetcond"
		}
		return "---"
	}
	trace := fmt.Sprintf("%s->%s", endpoint(c.fromOnGround, c.resetFrom), endpoint(c.toOnGround, c.resetTo))
	if c.st.AssumeGround {
		trace = "(assumeonground)" + trace
	}
	return trace
}
