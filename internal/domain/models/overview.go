package models

import "time"

type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Overview is derived entirely from the quote set of one request.
type Overview struct {
	TotalSymbols   int       `json:"totalSymbols"`
	Gainers        []Quote   `json:"gainers"`
	Losers         []Quote   `json:"losers"`
	HighVolatility []Quote   `json:"highVolatility"`
	Sentiment      Sentiment `json:"sentiment"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// AggregationResult is the unit returned to callers of the aggregation endpoints.
type AggregationResult struct {
	Quotes   []Quote  `json:"quotes"`
	Alerts   []Alert  `json:"alerts"`
	Overview Overview `json:"overview"`
}
