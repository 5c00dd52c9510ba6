package types

import "fmt"

// IndexStrategy selects how the knowledge store indexes and searches chunks.
type IndexStrategy string

const (
	IndexLexical IndexStrategy = "lexical"
	IndexVector  IndexStrategy = "vector"
)

// AllIndexStrategies returns all valid index strategies
func AllIndexStrategies() []IndexStrategy {
	return []IndexStrategy{IndexLexical, IndexVector}
}

// IsValid checks if the index strategy is valid
func (s IndexStrategy) IsValid() bool {
	switch s {
	case IndexLexical, IndexVector:
		return true
	default:
		return false
	}
}

// Normalize returns the strategy, treating empty as IndexLexical.
func (s IndexStrategy) Normalize() IndexStrategy {
	if s == "" {
		return IndexLexical
	}
	return s
}

// String returns the string representation of the index strategy
func (s IndexStrategy) String() string {
	return string(s)
}

// ParseIndexStrategy parses a string into an IndexStrategy
func ParseIndexStrategy(s string) (IndexStrategy, error) {
	strategy := IndexStrategy(s).Normalize()
	if !strategy.IsValid() {
		return "", fmt.Errorf("invalid index strategy: %s", s)
	}
	return strategy, nil
}
