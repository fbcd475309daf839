package chunk

import (
	"fmt"
	"strings"
)

// Splitter cuts text into overlapping word windows for indexing.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter validates the window parameters up front. overlap must be
// strictly smaller than size or the window would stall instead of advancing.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split slices text into windows of size words, each window starting
// size-overlap words after the previous one. Text at or under the window size
// comes back as a single chunk; empty text produces no chunks.
func (s *Splitter) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= s.size {
		return []string{text}
	}

	step := s.size - s.overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + s.size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Size reports the configured window size in words.
func (s *Splitter) Size() int { return s.size }

// Overlap reports the configured window overlap in words.
func (s *Splitter) Overlap() int { return s.overlap }
