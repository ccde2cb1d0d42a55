package punishment

import (
	"bytes"
	"testing"

	"github.com/oomph-ac/survivalfly/detection"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	veto    bool
	removed []Punishment
}

func (h *recordingHandler) HandlePunishment(_ string, p Punishment, message *string) bool {
	h.removed = append(h.removed, p)
	*message = "bye"
	return !h.veto
}

func TestParse(t *testing.T) {
	p, err := ParseAll([]string{"Cancel", " log", "kick", "ban", ""})
	require.NoError(t, err)
	require.Equal(t, []Punishment{Cancel(), Log(), Kick(), Ban(), None()}, p)

	_, err = Parse("explode")
	require.Error(t, err)
	require.True(t, Ban().Removes())
	require.False(t, Log().Removes())
	require.Equal(t, "none", Punishment{}.String())
}

func TestApplicableUsesHighestThreshold(t *testing.T) {
	l := NewList(DefaultThresholds(), nil, nil)
	require.Equal(t, 1300.0, l.Thresholds()[0].Level)

	require.Nil(t, l.Applicable(0))
	require.Equal(t, []Punishment{Cancel()}, l.Applicable(50))
	require.Equal(t, []Punishment{Log(), Cancel()}, l.Applicable(150))
	require.Equal(t, []Punishment{Log(), Cancel(), Kick()}, l.Applicable(1300.5))
}

func TestExecuteViolationActions(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	h := &recordingHandler{}
	l := NewList(DefaultThresholds(), log, h)

	data := detection.ViolationData{Entity: "steve", Check: detection.CheckName, Level: 20, Delta: 20, Tags: []string{"vdist"}}
	require.True(t, l.ExecuteViolationActions(data))
	require.Zero(t, buf.Len())

	data.Level = 450
	require.True(t, l.ExecuteViolationActions(data))
	require.Contains(t, buf.String(), "steve flagged SurvivalFly (vdist) <x450.00>")
	require.Empty(t, h.removed)

	data.Level = 2000
	l.ExecuteViolationActions(data)
	require.Equal(t, []Punishment{Kick()}, h.removed)
	require.Contains(t, buf.String(), "was removed from the server")
}

func TestVetoedRemovalIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	l := NewList([]Threshold{{Level: 10, Punishments: []Punishment{Ban()}}}, log, &recordingHandler{veto: true})

	require.False(t, l.ExecuteViolationActions(detection.ViolationData{Entity: "alex", Level: 11}))
	require.NotContains(t, buf.String(), "removed")
}
