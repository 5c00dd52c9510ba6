package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/makazi-lab/makazi/pkg/cli/config"
)

func writeScoringConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scoring.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadScoringConfig(t *testing.T) {
	t.Run("valid configuration with weights and cutoff", func(t *testing.T) {
		path := writeScoringConfig(t, `
cutoff = 0.2

[weights]
semantic = 0.4
location = 0.3
type = 0.1
preferences = 0.1
price = 0.05
amenities = 0.05
`)

		cfg, err := config.LoadScoringConfig(path)
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Weights).NotNil()
		gt.Value(t, cfg.Weights.Semantic).Equal(0.4)
		gt.Value(t, *cfg.Cutoff).Equal(0.2)
		gt.Value(t, cfg.Scorer()).NotNil()
	})

	t.Run("empty file keeps the defaults", func(t *testing.T) {
		path := writeScoringConfig(t, "")

		cfg, err := config.LoadScoringConfig(path)
		gt.NoError(t, err).Required()
		gt.Value(t, cfg.Weights).Nil()
		gt.Value(t, cfg.Cutoff).Nil()
		gt.Value(t, cfg.Scorer()).NotNil()
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		path := writeScoringConfig(t, `
[weights]
semantic = 0.5
location = 0.3
type = 0.1
preferences = 0.1
price = 0.05
amenities = 0.05
`)

		_, err := config.LoadScoringConfig(path)
		gt.Error(t, err)
	})

	t.Run("weights must not be negative", func(t *testing.T) {
		path := writeScoringConfig(t, `
[weights]
semantic = 0.5
location = -0.1
type = 0.2
preferences = 0.2
price = 0.1
amenities = 0.1
`)

		_, err := config.LoadScoringConfig(path)
		gt.Error(t, err)
	})

	t.Run("cutoff outside the unit interval is rejected", func(t *testing.T) {
		path := writeScoringConfig(t, "cutoff = 1.5\n")

		_, err := config.LoadScoringConfig(path)
		gt.Error(t, err).Is(config.ErrInvalidCutoff)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadScoringConfig(filepath.Join(t.TempDir(), "absent.toml"))
		gt.Error(t, err)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeScoringConfig(t, "[weights\nsemantic = ")

		_, err := config.LoadScoringConfig(path)
		gt.Error(t, err)
	})
}

func TestScoringConfigure(t *testing.T) {
	t.Run("no config path uses the defaults", func(t *testing.T) {
		scorer, err := config.NewScoringForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, scorer).NotNil()
	})

	t.Run("config file overrides apply", func(t *testing.T) {
		path := writeScoringConfig(t, "cutoff = 0.3\n")

		scorer, err := config.NewScoringForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, scorer).NotNil()
	})

	t.Run("invalid config fails configuration", func(t *testing.T) {
		path := writeScoringConfig(t, "cutoff = -0.5\n")

		_, err := config.NewScoringForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidCutoff)
	})
}
