// Package newsapi reads articles from newsapi.org for the news endpoints and
// the news-impact alert pass.
package newsapi

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/util"
)

const (
	sourceSuffix  = " (NewsAPI)"
	alertPageSize = 5
)

var financeDomains = []string{
	"bloomberg.com", "reuters.com", "cnbc.com", "marketwatch.com", "finance.yahoo.com",
}

type Client struct {
	base *upstream.Base
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	return &Client{base: upstream.NewBase(models.ProviderNewsAPI, cfg, l)}
}

func (c *Client) Name() models.ProviderName { return models.ProviderNewsAPI }

type everything struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Latest lists recent finance articles from the major business outlets.
func (c *Client) Latest(ctx context.Context, apiKey string, limit int) ([]models.NewsArticle, error) {
	return c.everything(ctx, apiKey, map[string][]string{
		"q":       {"stock market OR cryptocurrency OR forex"},
		"domains": {strings.Join(financeDomains, ",")},
	}, limit)
}

// Search runs a free text query.
func (c *Client) Search(ctx context.Context, apiKey, query string, limit int) ([]models.NewsArticle, error) {
	return c.everything(ctx, apiKey, map[string][]string{"q": {query}}, limit)
}

// MarketNews runs the alert pass query over the given symbols.
func (c *Client) MarketNews(ctx context.Context, apiKey string, symbols []string) ([]models.NewsArticle, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	q := strings.Join(symbols, " OR ") + " market stock"
	return c.everything(ctx, apiKey, map[string][]string{"q": {q}}, alertPageSize)
}

func (c *Client) everything(ctx context.Context, apiKey string, q map[string][]string, limit int) ([]models.NewsArticle, error) {
	if apiKey == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	q["sortBy"] = []string{"publishedAt"}
	q["language"] = []string{"en"}
	q["pageSize"] = []string{strconv.Itoa(limit)}

	var resp everything
	if err := c.base.GetJSON(ctx, "/v2/everything", q, map[string]string{"X-Api-Key": apiKey}, &resp, apiKey); err != nil {
		return nil, err
	}
	if resp.Status != "" && resp.Status != "ok" {
		c.base.Log.Warn("newsapi error", applogger.String("code", resp.Code), applogger.String("message", util.Truncate(resp.Message, 120)))
		return nil, nil
	}

	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" || a.URL == "" || a.Title == "[Removed]" {
			continue
		}
		published := util.ParseTimeDefault(a.PublishedAt, time.Time{})
		articles = append(articles, models.NewsArticle{
			ID:          a.URL,
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: published.UTC(),
			Source:      a.Source.Name + sourceSuffix,
			Category:    categorize(a.Title + " " + a.Description),
			Sentiment:   models.NewsNeutral,
		})
	}
	return articles, nil
}

func categorize(text string) models.NewsCategory {
	t := strings.ToLower(text)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(t, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("bitcoin", "crypto", "ethereum", "blockchain"):
		return models.NewsCrypto
	case contains("forex", "currency", "dollar", "euro", "exchange rate"):
		return models.NewsForex
	case contains("stock", "shares", "earnings", "nasdaq", "s&p"):
		return models.NewsStock
	default:
		return models.NewsGeneral
	}
}
