package models

import (
	"strings"
	"time"
)

// SourceDemo tags synthetic quotes so callers can tell them from live data.
const SourceDemo = "Demo Data"

// ProviderName identifies an upstream data source.
type ProviderName string

const (
	ProviderCoinGecko    ProviderName = "coingecko"
	ProviderAlphaVantage ProviderName = "alpha_vantage"
	ProviderPolygon      ProviderName = "polygon"
	ProviderFinnhub      ProviderName = "finnhub"
	ProviderAlpaca       ProviderName = "alpaca"
	ProviderYahoo        ProviderName = "yahoo_finance"
	ProviderBinance      ProviderName = "binance"
	ProviderNewsAPI      ProviderName = "newsapi"
	ProviderFallback     ProviderName = "fallback"
)

// MarketCategory is derived from a symbol by the classifier.
type MarketCategory string

const (
	CategoryEquity MarketCategory = "equity"
	CategoryCrypto MarketCategory = "crypto"
	CategoryForex  MarketCategory = "forex"
)

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Quote is one provider's view of one symbol at one point in time.
// Price is always positive and ChangePercent is a percentage.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        float64   `json:"volume,omitempty"`
	High          float64   `json:"high,omitempty"`
	Low           float64   `json:"low,omitempty"`
	Open          float64   `json:"open,omitempty"`
	MarketCap     float64   `json:"marketCap,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
}

// Valid reports whether the quote carries a usable price.
func (q Quote) Valid() bool {
	return q.Symbol != "" && q.Price > 0
}

// IsDemo reports whether the quote was synthesized.
func (q Quote) IsDemo() bool {
	return q.Source == SourceDemo
}
