package signals

import (
	"testing"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

func quotesWith(cps ...float64) []models.Quote {
	out := make([]models.Quote, len(cps))
	for i, cp := range cps {
		out[i] = models.Quote{Symbol: string(rune('A' + i)), Price: 1, ChangePercent: cp}
	}
	return out
}

func TestSynthesizeSentiment(t *testing.T) {
	cases := []struct {
		name string
		cps  []float64
		want models.Sentiment
	}{
		{"bullish", []float64{2, 2, 2}, models.SentimentBullish},
		{"bearish", []float64{-2, -2, -2}, models.SentimentBearish},
		{"neutral", []float64{0.5, -0.5}, models.SentimentNeutral},
		{"edge", []float64{1, 1}, models.SentimentNeutral},
		{"empty", nil, models.SentimentNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ov := Synthesize(quotesWith(tc.cps...), now)
			if ov.Sentiment != tc.want {
				t.Fatalf("got %s want %s", ov.Sentiment, tc.want)
			}
			if ov.TotalSymbols != len(tc.cps) {
				t.Fatalf("total %d want %d", ov.TotalSymbols, len(tc.cps))
			}
		})
	}
}

func TestSynthesizeBuckets(t *testing.T) {
	ov := Synthesize(quotesWith(3, 3.5, -4, 0), now)
	if len(ov.Gainers) != 2 || len(ov.Losers) != 1 {
		t.Fatalf("gainers %d losers %d", len(ov.Gainers), len(ov.Losers))
	}
	// 3 is not above the 3% bucket threshold
	if len(ov.HighVolatility) != 2 {
		t.Fatalf("high volatility %d", len(ov.HighVolatility))
	}
}

func TestSynthesizeEmptyHasNonNilBuckets(t *testing.T) {
	ov := Synthesize(nil, now)
	if ov.Gainers == nil || ov.Losers == nil || ov.HighVolatility == nil {
		t.Fatalf("buckets must serialize as empty arrays")
	}
}
