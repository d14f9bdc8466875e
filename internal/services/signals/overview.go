package signals

import (
	"math"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

const (
	// OverviewVolatility is wider than the alert threshold on purpose.
	OverviewVolatility = 3.0
	SentimentBand      = 1.0
)

// Synthesize buckets quotes and labels overall sentiment from the mean change.
// An empty set is neutral with zero counts.
func Synthesize(quotes []models.Quote, now time.Time) models.Overview {
	ov := models.Overview{
		TotalSymbols:   len(quotes),
		Gainers:        make([]models.Quote, 0),
		Losers:         make([]models.Quote, 0),
		HighVolatility: make([]models.Quote, 0),
		Sentiment:      models.SentimentNeutral,
		LastUpdated:    now,
	}
	if len(quotes) == 0 {
		return ov
	}

	var sum float64
	for _, q := range quotes {
		cp := q.ChangePercent
		sum += cp
		if cp > 0 {
			ov.Gainers = append(ov.Gainers, q)
		} else if cp < 0 {
			ov.Losers = append(ov.Losers, q)
		}
		if math.Abs(cp) > OverviewVolatility {
			ov.HighVolatility = append(ov.HighVolatility, q)
		}
	}

	mean := sum / float64(len(quotes))
	switch {
	case mean > SentimentBand:
		ov.Sentiment = models.SentimentBullish
	case mean < -SentimentBand:
		ov.Sentiment = models.SentimentBearish
	}
	return ov
}
