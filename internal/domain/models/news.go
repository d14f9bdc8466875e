package models

import "time"

type NewsCategory string

const (
	NewsStock   NewsCategory = "stock"
	NewsCrypto  NewsCategory = "crypto"
	NewsForex   NewsCategory = "forex"
	NewsGeneral NewsCategory = "general"
)

// ParseNewsCategory reports whether s names a known category.
func ParseNewsCategory(s string) (NewsCategory, bool) {
	switch c := NewsCategory(s); c {
	case NewsStock, NewsCrypto, NewsForex, NewsGeneral:
		return c, true
	}
	return "", false
}

type NewsSentiment string

const (
	NewsPositive NewsSentiment = "positive"
	NewsNegative NewsSentiment = "negative"
	NewsNeutral  NewsSentiment = "neutral"
)

type NewsArticle struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Summary        string        `json:"summary"`
	URL            string        `json:"url"`
	ImageURL       string        `json:"imageUrl,omitempty"`
	PublishedAt    time.Time     `json:"publishedAt"`
	Source         string        `json:"source"`
	Category       NewsCategory  `json:"category"`
	Tickers        []string      `json:"tickers,omitempty"`
	Sentiment      NewsSentiment `json:"sentiment,omitempty"`
	RelevanceScore float64       `json:"relevanceScore,omitempty"`
}

// NewsStatus reports which news providers have a usable credential.
type NewsStatus struct {
	AlphaVantage bool   `json:"alphaVantage"`
	NewsAPI      bool   `json:"newsApi"`
	Polygon      bool   `json:"polygon"`
	Keys         KeyMap `json:"keys"`
}

// KeyMap holds masked credentials for display.
type KeyMap map[ProviderName]string
