package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/punishment"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsMatchDefaultOptions(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	require.Equal(t, detection.DefaultOptions(), s.Options())

	th, err := s.Thresholds()
	require.NoError(t, err)
	require.Equal(t, punishment.DefaultThresholds(), th)
}

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survivalfly.toml")
	require.NoError(t, SaveDefault(path))
	require.Error(t, SaveDefault(path), "existing files must not be overwritten")

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, detection.DefaultOptions(), s.Options())
	require.Len(t, s.Actions, 4)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.SurvivalFly.Speeds.DepthStrider = []float64{1, 1}
	require.Error(t, s.Validate())

	s = DefaultSettings()
	s.SurvivalFly.Speeds.Walk = 0
	require.Error(t, s.Validate())

	s = DefaultSettings()
	s.SurvivalFly.Violations.Decay = 1.5
	require.Error(t, s.Validate())

	s = DefaultSettings()
	s.Actions = append(s.Actions, Threshold{Level: 9000, Punishments: []string{"explode"}})
	require.Error(t, s.Validate())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survivalfly.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[Actions]]\nLevel = 10.0\nPunishments = [\"explode\"]\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
