package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VaderScorer scores text in process with the VADER lexicon. The compound
// score is already normalised to [-1, 1]; text with no sentiment-bearing
// words scores exactly 0.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

func (s *VaderScorer) Polarity(_ context.Context, text string) (float64, error) {
	return s.Score(text), nil
}

func (s *VaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
