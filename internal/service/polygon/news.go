package polygon

import (
	"context"
	"strconv"
	"strings"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/util"
)

type newsResponse struct {
	Results []struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ArticleURL  string   `json:"article_url"`
		ImageURL    string   `json:"image_url"`
		Published   string   `json:"published_utc"`
		Tickers     []string `json:"tickers"`
		Publisher   struct {
			Name string `json:"name"`
		} `json:"publisher"`
	} `json:"results"`
}

// Latest lists the most recent reference news.
func (c *Client) Latest(ctx context.Context, apiKey string, limit int) ([]models.NewsArticle, error) {
	return c.news(ctx, apiKey, "", limit)
}

// ForTicker lists reference news for one ticker.
func (c *Client) ForTicker(ctx context.Context, apiKey, ticker string, limit int) ([]models.NewsArticle, error) {
	return c.news(ctx, apiKey, ticker, limit)
}

func (c *Client) news(ctx context.Context, apiKey, ticker string, limit int) ([]models.NewsArticle, error) {
	if apiKey == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	q := map[string][]string{
		"apiKey": {apiKey},
		"limit":  {strconv.Itoa(limit)},
		"order":  {"desc"},
	}
	if ticker != "" {
		q["ticker"] = []string{ticker}
	}

	var resp newsResponse
	if err := c.base.GetJSON(ctx, "/v2/reference/news", q, nil, &resp, apiKey); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Title == "" || r.ArticleURL == "" {
			continue
		}
		published, _ := util.ParseTime(r.Published)
		articles = append(articles, models.NewsArticle{
			ID:          r.ID,
			Title:       r.Title,
			Summary:     r.Description,
			URL:         r.ArticleURL,
			ImageURL:    r.ImageURL,
			PublishedAt: published.UTC(),
			Source:      r.Publisher.Name + " (Polygon.io)",
			Category:    categorizeByTickers(r.Tickers),
			Tickers:     r.Tickers,
			Sentiment:   models.NewsNeutral,
		})
	}
	return articles, nil
}

// categorizeByTickers treats USD/BTC/ETH tickers (X:BTCUSD and similar) as crypto.
func categorizeByTickers(tickers []string) models.NewsCategory {
	if len(tickers) == 0 {
		return models.NewsGeneral
	}
	for _, t := range tickers {
		if strings.Contains(t, "USD") || strings.Contains(t, "BTC") || strings.Contains(t, "ETH") {
			return models.NewsCrypto
		}
	}
	return models.NewsStock
}
