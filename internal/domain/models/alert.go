package models

import "time"

type AlertType string

const (
	AlertHighVolatility AlertType = "high_volatility"
	AlertPriceTarget    AlertType = "price_target"
	AlertVolumeSpike    AlertType = "volume_spike"
	AlertNewsImpact     AlertType = "news_impact"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities; unknown values rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Alert is generated fresh per request and never persisted.
type Alert struct {
	ID             string    `json:"id"`
	Type           AlertType `json:"type"`
	Symbol         string    `json:"symbol"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Severity       Severity  `json:"severity"`
	Timestamp      time.Time `json:"timestamp"`
	Impact         Impact    `json:"impact"`
	Recommendation string    `json:"recommendation,omitempty"`
}
