package config

import (
	"strings"

	"github.com/makazi-lab/makazi/pkg/service/knowledge"
)

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewKnowledgeForTest creates a Knowledge config for testing purposes
func NewKnowledgeForTest(root, index string, chunkSize, chunkOverlap, topK int) *Knowledge {
	return &Knowledge{
		root:         root,
		index:        index,
		extensions:   strings.Join(knowledge.DefaultExtensions, ","),
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		topK:         topK,
		threshold:    knowledge.DefaultVectorThreshold,
	}
}

// NewScoringForTest creates a Scoring config for testing purposes
func NewScoringForTest(configPath string) *Scoring {
	return &Scoring{
		configPath: configPath,
	}
}
