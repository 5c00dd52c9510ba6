package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/usecase"
)

// Agent holds CLI flags for the conversational orchestrator
type Agent struct {
	maxContextLength     int
	maxRecommendations   int
	generationTimeoutSec int
}

// Flags returns CLI flags for agent configuration
func (x *Agent) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-context-length",
			Usage:       "Byte budget for retrieved context per prompt",
			Value:       usecase.DefaultMaxContextLength,
			Sources:     cli.EnvVars("MAKAZI_MAX_CONTEXT_LENGTH"),
			Destination: &x.maxContextLength,
		},
		&cli.IntFlag{
			Name:        "max-recommendations",
			Usage:       "Maximum recommended listings per response",
			Value:       usecase.DefaultMaxRecommendations,
			Sources:     cli.EnvVars("MAKAZI_MAX_RECOMMENDATIONS"),
			Destination: &x.maxRecommendations,
		},
		&cli.IntFlag{
			Name:        "generation-timeout-sec",
			Usage:       "Timeout in seconds per generation call",
			Value:       int(usecase.DefaultGenerationTimeout / time.Second),
			Sources:     cli.EnvVars("MAKAZI_GENERATION_TIMEOUT_SEC"),
			Destination: &x.generationTimeoutSec,
		},
	}
}

// LogAttrs returns log attributes for the agent configuration
func (x *Agent) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("max_context_length", x.maxContextLength),
		slog.Int("max_recommendations", x.maxRecommendations),
		slog.Int("generation_timeout_sec", x.generationTimeoutSec),
	}
}

// Options renders the flags as orchestrator options.
func (x *Agent) Options() []usecase.Option {
	return []usecase.Option{
		usecase.WithMaxContextLength(x.maxContextLength),
		usecase.WithMaxRecommendations(x.maxRecommendations),
		usecase.WithGenerationTimeout(time.Duration(x.generationTimeoutSec) * time.Second),
	}
}
