// Package chunker splits raw document text into overlapping,
// sentence-aligned chunks for indexing.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of repeated characters between
// consecutive chunks.
const DefaultOverlap = 200

// boundaryScan caps how far back from a window boundary the chunker looks
// for a sentence terminator.
const boundaryScan = 100

// Chunker produces overlapping chunks of bounded size.
type Chunker struct {
	size    int
	overlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a Chunker with the given options. An overlap at or above the
// chunk size would stall the window walk, so it is reduced to a quarter of
// the chunk size.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.overlap >= c.size {
		c.overlap = c.size / 4
	}

	return c
}

// Split cuts text into chunks. Text at or under the chunk size yields a
// single trimmed chunk. Longer text is walked in fixed windows; each window
// boundary is pulled back to the nearest sentence terminator within the
// scan range, and the next window starts overlap characters before the cut
// so matches straddling a boundary stay findable. Empty chunks are dropped.
func (c *Chunker) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if len(text) <= c.size {
		return []string{trimmed}
	}

	chunks := make([]string, 0, len(text)/(c.size-c.overlap)+1)
	start := 0

	for start < len(text) {
		end := start + c.size
		last := end >= len(text)
		if last {
			end = len(text)
		} else {
			end = c.sentenceCut(text, end)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if last {
			break
		}

		next := end - c.overlap
		if next <= start {
			// A deep boundary pull could stop the walk advancing
			next = end
		}
		start = next
	}

	return chunks
}

// sentenceCut scans back from the raw window boundary for a sentence
// terminator and returns the position just after it, or the raw boundary
// when none is in range.
func (c *Chunker) sentenceCut(text string, end int) int {
	lookback := boundaryScan
	if c.size-c.overlap < lookback {
		lookback = c.size - c.overlap
	}

	for i := lookback; i > 0; i-- {
		pos := end - i
		if pos < 0 || pos >= len(text) {
			continue
		}
		switch text[pos] {
		case '.', '!', '?':
			return pos + 1
		}
	}

	return end
}
