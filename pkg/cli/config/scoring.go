package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/service/scoring"
)

// Scoring holds CLI flags for listing score configuration
type Scoring struct {
	configPath string
}

// Flags returns CLI flags for scoring configuration
func (x *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to a TOML file overriding scoring weights and cutoff",
			Sources:     cli.EnvVars("MAKAZI_SCORING_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// LogAttrs returns log attributes for the scoring configuration
func (x *Scoring) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("config_path", x.configPath),
	}
}

// IsConfigured returns true if a scoring config file is set
func (x *Scoring) IsConfigured() bool {
	return x.configPath != ""
}

// Load parses and validates the configured TOML file
func (x *Scoring) Load() (*ScoringConfig, error) {
	return LoadScoringConfig(x.configPath)
}

// Configure builds the scorer. Without a config file the tuned defaults
// apply.
func (x *Scoring) Configure() (*scoring.Scorer, error) {
	if !x.IsConfigured() {
		return scoring.New(), nil
	}

	cfg, err := x.Load()
	if err != nil {
		return nil, err
	}
	return cfg.Scorer(), nil
}

// ScoringConfig mirrors the scoring TOML file. Both sections are optional;
// an absent section keeps the built-in value.
type ScoringConfig struct {
	Weights *WeightTable `toml:"weights"`
	Cutoff  *float64     `toml:"cutoff"`
}

// WeightTable is the [weights] table of the scoring config.
type WeightTable struct {
	Semantic    float64 `toml:"semantic"`
	Location    float64 `toml:"location"`
	Type        float64 `toml:"type"`
	Preferences float64 `toml:"preferences"`
	Price       float64 `toml:"price"`
	Amenities   float64 `toml:"amenities"`
}

func (w *WeightTable) toWeights() scoring.Weights {
	return scoring.Weights{
		Semantic:    w.Semantic,
		Location:    w.Location,
		Type:        w.Type,
		Preferences: w.Preferences,
		Price:       w.Price,
		Amenities:   w.Amenities,
	}
}

// Validate checks if the ScoringConfig is valid
func (c *ScoringConfig) Validate() error {
	if c.Weights != nil {
		if err := c.Weights.toWeights().Validate(); err != nil {
			return goerr.Wrap(err, "invalid scoring weights")
		}
	}
	if c.Cutoff != nil && (*c.Cutoff < 0 || *c.Cutoff >= 1) {
		return goerr.Wrap(ErrInvalidCutoff, "cutoff must be within [0, 1)", goerr.V("cutoff", *c.Cutoff))
	}
	return nil
}

// Scorer builds a scorer applying the configured overrides.
func (c *ScoringConfig) Scorer() *scoring.Scorer {
	var opts []scoring.Option
	if c.Weights != nil {
		opts = append(opts, scoring.WithWeights(c.Weights.toWeights()))
	}
	if c.Cutoff != nil {
		opts = append(opts, scoring.WithCutoff(*c.Cutoff))
	}
	return scoring.New(opts...)
}

// LoadScoringConfig loads the scoring configuration from a TOML file
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config", goerr.V("path", path))
	}

	var config ScoringConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML scoring config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "scoring config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
