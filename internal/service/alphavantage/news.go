package alphavantage

import (
	"context"
	"strconv"
	"strings"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/util"

	"github.com/tidwall/gjson"
)

const newsSource = "Alpha Vantage"

var defaultTopics = []string{"financial_markets", "technology", "blockchain"}

// Latest reads the NEWS_SENTIMENT feed for the default market topics.
func (c *Client) Latest(ctx context.Context, apiKey string, limit int) ([]models.NewsArticle, error) {
	return c.news(ctx, apiKey, defaultTopics, limit)
}

// Search uses the query as a topic filter, which is all the feed supports.
func (c *Client) Search(ctx context.Context, apiKey, query string, limit int) ([]models.NewsArticle, error) {
	return c.news(ctx, apiKey, []string{strings.ToLower(strings.TrimSpace(query))}, limit)
}

func (c *Client) news(ctx context.Context, apiKey string, topics []string, limit int) ([]models.NewsArticle, error) {
	if apiKey == "" {
		return nil, nil
	}
	res, ok, err := c.query(ctx, map[string][]string{
		"function": {"NEWS_SENTIMENT"},
		"topics":   {strings.Join(topics, ",")},
		"limit":    {itoa(limit)},
		"sort":     {"LATEST"},
	}, apiKey)
	if err != nil || !ok {
		return nil, err
	}
	if msg := res.Get("Error Message"); msg.Exists() {
		c.base.Log.Warn("news error message", applogger.String("message", util.Truncate(msg.String(), 120)))
		return nil, nil
	}
	return parseFeed(res.Get("feed")), nil
}

func parseFeed(feed gjson.Result) []models.NewsArticle {
	articles := make([]models.NewsArticle, 0)
	feed.ForEach(func(_, a gjson.Result) bool {
		title := a.Get("title").String()
		url := a.Get("url").String()
		if title == "" || url == "" {
			return true
		}
		var tickers []string
		a.Get("ticker_sentiment.#.ticker").ForEach(func(_, t gjson.Result) bool {
			tickers = append(tickers, t.String())
			return true
		})
		published, _ := util.ParseTime(a.Get("time_published").String())
		relevance, _ := util.ParseFloat(a.Get("relevance_score").String())

		articles = append(articles, models.NewsArticle{
			ID:             url,
			Title:          title,
			Summary:        a.Get("summary").String(),
			URL:            url,
			ImageURL:       a.Get("banner_image").String(),
			PublishedAt:    published.UTC(),
			Source:         a.Get("source").String() + " (" + newsSource + ")",
			Category:       categorizeByTopics(a.Get("topics.#.topic")),
			Tickers:        tickers,
			Sentiment:      MapSentiment(a.Get("overall_sentiment_score").Float()),
			RelevanceScore: relevance,
		})
		return true
	})
	return articles
}

func categorizeByTopics(topics gjson.Result) models.NewsCategory {
	var labels []string
	topics.ForEach(func(_, t gjson.Result) bool {
		labels = append(labels, strings.ToLower(t.String()))
		return true
	})
	has := func(subs ...string) bool {
		for _, l := range labels {
			for _, s := range subs {
				if strings.Contains(l, s) {
					return true
				}
			}
		}
		return false
	}
	switch {
	case has("crypto", "blockchain"):
		return models.NewsCrypto
	case has("forex", "currency"):
		return models.NewsForex
	case has("stock", "equity"):
		return models.NewsStock
	default:
		return models.NewsGeneral
	}
}

// MapSentiment buckets the feed's overall sentiment score.
func MapSentiment(score float64) models.NewsSentiment {
	switch {
	case score > 0.1:
		return models.NewsPositive
	case score < -0.1:
		return models.NewsNegative
	default:
		return models.NewsNeutral
	}
}

func itoa(n int) string {
	if n <= 0 {
		n = 20
	}
	return strconv.Itoa(n)
}
