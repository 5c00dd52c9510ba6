package chunker_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/makazi-lab/makazi/pkg/service/chunker"
)

func TestSplitShortText(t *testing.T) {
	c := chunker.New()

	t.Run("text under chunk size returns single trimmed chunk", func(t *testing.T) {
		chunks := c.Split("  Kilimani 2-bedroom apartments average KSH 60,000/month.  ")
		gt.Array(t, chunks).Length(1)
		gt.Value(t, chunks[0]).Equal("Kilimani 2-bedroom apartments average KSH 60,000/month.")
	})

	t.Run("text exactly at chunk size returns single chunk", func(t *testing.T) {
		text := strings.Repeat("a", chunker.DefaultChunkSize)
		chunks := c.Split(text)
		gt.Array(t, chunks).Length(1)
		gt.Value(t, chunks[0]).Equal(text)
	})

	t.Run("empty and whitespace-only text yields no chunks", func(t *testing.T) {
		gt.Array(t, c.Split("")).Length(0)
		gt.Array(t, c.Split("   \n\t  ")).Length(0)
	})
}

func TestSplitLongText(t *testing.T) {
	t.Run("consecutive chunks share overlap characters", func(t *testing.T) {
		// Terminator-free text keeps boundaries at raw positions, so the
		// overlap is exact.
		c := chunker.New()
		text := strings.Repeat("abcdefghij", 300) // 3000 chars
		chunks := c.Split(text)

		gt.Number(t, len(chunks)).GreaterOrEqual(2)
		for i := 1; i < len(chunks); i++ {
			prev := chunks[i-1]
			tail := prev[len(prev)-chunker.DefaultOverlap:]
			gt.Bool(t, strings.HasPrefix(chunks[i], tail)).True()
		}
	})

	t.Run("boundary is pulled back to a sentence terminator", func(t *testing.T) {
		c := chunker.New()
		// A period at position 950 sits inside the 100-char scan range of
		// the first window boundary at 1000.
		text := strings.Repeat("a", 950) + "." + strings.Repeat("b", 1000)
		chunks := c.Split(text)

		gt.Number(t, len(chunks)).GreaterOrEqual(2)
		gt.Bool(t, strings.HasSuffix(chunks[0], ".")).True()
		gt.Number(t, len(chunks[0])).Equal(951)
	})

	t.Run("earliest terminator in scan range wins", func(t *testing.T) {
		c := chunker.New()
		text := strings.Repeat("a", 930) + "." + strings.Repeat("b", 39) + "." + strings.Repeat("c", 1000)
		chunks := c.Split(text)

		gt.Number(t, len(chunks[0])).Equal(931)
	})

	t.Run("terminator outside scan range is ignored", func(t *testing.T) {
		c := chunker.New()
		// Period at 800 is beyond the 100-char lookback from 1000.
		text := strings.Repeat("a", 800) + "." + strings.Repeat("b", 1500)
		chunks := c.Split(text)

		gt.Number(t, len(chunks[0])).Equal(chunker.DefaultChunkSize)
	})

	t.Run("all input text is covered", func(t *testing.T) {
		c := chunker.New()
		text := strings.Repeat("word. ", 1000)
		chunks := c.Split(text)

		joined := strings.Join(chunks, "")
		gt.Bool(t, strings.Contains(joined, "word.")).True()
		last := chunks[len(chunks)-1]
		gt.Bool(t, strings.HasSuffix(strings.TrimSpace(text), last)).True()
	})
}

func TestSplitOptions(t *testing.T) {
	t.Run("custom size and overlap", func(t *testing.T) {
		c := chunker.New(chunker.WithChunkSize(100), chunker.WithOverlap(20))
		text := strings.Repeat("x", 500)
		chunks := c.Split(text)

		gt.Number(t, len(chunks)).GreaterOrEqual(2)
		gt.Number(t, len(chunks[0])).Equal(100)
	})

	t.Run("overlap at or above chunk size is reduced", func(t *testing.T) {
		c := chunker.New(chunker.WithChunkSize(100), chunker.WithOverlap(100))
		text := strings.Repeat("y", 1000)

		// Must terminate and still cover the text
		chunks := c.Split(text)
		gt.Number(t, len(chunks)).GreaterOrEqual(2)
	})

	t.Run("non-positive options fall back to defaults", func(t *testing.T) {
		c := chunker.New(chunker.WithChunkSize(0), chunker.WithOverlap(-5))
		text := strings.Repeat("z", 1500)
		chunks := c.Split(text)

		gt.Number(t, len(chunks[0])).Equal(chunker.DefaultChunkSize)
	})
}

func TestSplitIdempotence(t *testing.T) {
	c := chunker.New()
	text := strings.Repeat("Nairobi rents rose sharply this quarter. ", 60)

	first := c.Split(text)
	second := c.Split(text)

	gt.Array(t, second).Length(len(first))
	for i := range first {
		gt.Value(t, second[i]).Equal(first[i])
	}
}
