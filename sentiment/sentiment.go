// Package sentiment classifies message polarity and rolls it up per chat.
package sentiment

import (
	"context"
	"fmt"
	"math"
)

type Label string

const (
	Positive   Label = "Positive"
	Negative   Label = "Negative"
	Neutral    Label = "Neutral"
	NoMessages Label = "No Messages"
)

// Scorer returns a polarity in [-1, 1] for a piece of text.
type Scorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(ctx context.Context, text string) (float64, error)

func (f ScorerFunc) Polarity(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// Summary is the per-chat rollup. Positive+Negative+Neutral == Total.
type Summary struct {
	Total       int
	Positive    int
	Negative    int
	Neutral     int
	Average     float64
	Overall     Label
	HasMessages bool
}

// EmptySummary is the rollup of a chat without customer messages.
func EmptySummary() Summary {
	return Summary{Overall: NoMessages}
}

// Classify buckets a single polarity. Only an exact zero is neutral.
func Classify(polarity float64) Label {
	switch {
	case polarity > 0:
		return Positive
	case polarity < 0:
		return Negative
	default:
		return Neutral
	}
}

// Aggregate scores every message in order. The overall label follows the
// sign of the unrounded mean, so a chat whose positive and negative
// messages cancel out is Neutral even with no neutral message.
func Aggregate(ctx context.Context, scorer Scorer, messages []string) (Summary, error) {
	if len(messages) == 0 {
		return EmptySummary(), nil
	}

	summary := Summary{HasMessages: true}
	var total float64
	for i, message := range messages {
		polarity, err := scorer.Polarity(ctx, message)
		if err != nil {
			return Summary{}, fmt.Errorf("score message %d: %w", i, err)
		}

		switch Classify(polarity) {
		case Positive:
			summary.Positive++
		case Negative:
			summary.Negative++
		default:
			summary.Neutral++
		}
		total += polarity
	}

	summary.Total = len(messages)
	average := total / float64(summary.Total)
	summary.Average = Round2(average)
	summary.Overall = Classify(average)

	return summary, nil
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
