package chunker

import (
	"errors"
	"strconv"
	"strings"

	"medbot/internal/domain"
)

// Defaults must match the parameters the index was built with.
const (
	DefaultSize    = 500
	DefaultOverlap = 20
)

var (
	ErrInvalidSize    = errors.New("chunk size must be positive")
	ErrInvalidOverlap = errors.New("chunk overlap must be non-negative and smaller than the chunk size")
)

// WindowChunker splits text into fixed-size character windows with a fixed
// overlap between consecutive windows. Sizes are counted in runes so a
// window never splits inside a multi-byte character.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker validates the window parameters and fails fast on
// invalid ones; there are no error conditions after construction.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if overlap < 0 || overlap >= size {
		return nil, ErrInvalidOverlap
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Chunk produces an ordered sequence of overlapping windows covering the
// document text. Window i starts at i*(size-overlap), so stripping the
// first overlap runes from every window after the first reconstructs the
// input. Text shorter than the window size yields a single chunk equal to
// the input; empty or whitespace-only text yields none.
func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	if strings.TrimSpace(document.Text) == "" {
		return nil, nil
	}
	runes := []rune(document.Text)
	step := c.size - c.overlap

	var chunks []domain.Chunk
	for start, idx := 0, 0; ; start, idx = start+step, idx+1 {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Index:      idx,
			Text:       string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
