package types

// ExtractionMethod records which path produced a requirement record, so
// callers and tests can tell a structured LLM extraction from the keyword
// fallback without relying on logs.
type ExtractionMethod string

const (
	ExtractionStructured ExtractionMethod = "structured"
	ExtractionFallback   ExtractionMethod = "fallback"
)

// IsValid checks if the extraction method is valid
func (m ExtractionMethod) IsValid() bool {
	switch m {
	case ExtractionStructured, ExtractionFallback:
		return true
	default:
		return false
	}
}

// String returns the string representation of the extraction method
func (m ExtractionMethod) String() string {
	return string(m)
}
