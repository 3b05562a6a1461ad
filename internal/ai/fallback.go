package ai

import (
	"context"
	"regexp"

	"github.com/egil10/nordnotat/internal/marketplace"
)

const (
	// fallbackSummary is shown when no generator is available.
	fallbackSummary = "Automatic summary is not available for this document."

	// fallbackDifficulty is the default medium difficulty.
	fallbackDifficulty = 3
)

// fallbackTags are the stock tags applied when generation degrades.
var fallbackTags = []string{"academic", "notes"}

// courseCodePattern matches common university course code formats,
// 2-4 letters followed by 4-5 digits (STK1110, MAT1125, INF10100).
var courseCodePattern = regexp.MustCompile(`\b[A-Z]{2,4}\d{4,5}\b`)

// Fallback is the deterministic metadata generator used when no AI
// service is configured, and as the degradation target when the live
// client fails. It never returns an error.
// Implements marketplace.MetadataGenerator.
type Fallback struct{}

// NewFallback creates the deterministic generator.
func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Summarize(ctx context.Context, text string) (string, error) {
	return fallbackSummary, nil
}

func (f *Fallback) Tags(ctx context.Context, text string) ([]string, error) {
	tags := make([]string, len(fallbackTags))
	copy(tags, fallbackTags)
	return tags, nil
}

// CourseCodes detects course codes by pattern, deduplicated in order
// of first appearance.
func (f *Fallback) CourseCodes(ctx context.Context, text string) ([]string, error) {
	matches := courseCodePattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var codes []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			codes = append(codes, m)
		}
	}
	return codes, nil
}

func (f *Fallback) Difficulty(ctx context.Context, text string) (int, error) {
	return fallbackDifficulty, nil
}

func (f *Fallback) Flashcards(ctx context.Context, text string) ([]marketplace.Flashcard, error) {
	return nil, nil
}
