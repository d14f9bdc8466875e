package finnhub

import (
	"context"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/util"
)

const sourceName = "Finnhub"

// Client quotes equities one symbol at a time through /quote.
type Client struct {
	base *upstream.Base
	now  func() time.Time
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	return &Client{
		base: upstream.NewBase(models.ProviderFinnhub, cfg, l),
		now:  time.Now,
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderFinnhub }

func (c *Client) Supports(cat models.MarketCategory) bool { return cat == models.CategoryEquity }

type fhQuote struct {
	Current   float64 `json:"c"`
	Change    float64 `json:"d"`
	Percent   float64 `json:"dp"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
	Time      int64   `json:"t"`
}

func (c *Client) Fetch(ctx context.Context, symbols []string, apiKey string) ([]models.Quote, error) {
	if apiKey == "" {
		return nil, nil
	}
	return c.base.Sequential(ctx, c.base.Limit(symbols), func(ctx context.Context, sym string) (models.Quote, bool, error) {
		var q fhQuote
		err := c.base.GetJSON(ctx, "/quote", map[string][]string{
			"symbol": {sym},
			"token":  {apiKey},
		}, nil, &q, apiKey)
		if err != nil {
			return models.Quote{}, false, err
		}
		return toQuote(sym, q, c.now().UTC())
	})
}

// toQuote drops the all-zero answer Finnhub returns for unknown symbols.
func toQuote(sym string, q fhQuote, now time.Time) (models.Quote, bool, error) {
	if q.Current <= 0 {
		return models.Quote{}, false, nil
	}
	ts := now
	if q.Time > 0 {
		ts = util.FromUnixAuto(q.Time).UTC()
	}
	change, pct := q.Change, q.Percent
	if change == 0 && q.PrevClose > 0 {
		change = q.Current - q.PrevClose
		pct = change / q.PrevClose * 100
	}
	return models.Quote{
		Symbol:        sym,
		Price:         q.Current,
		Change:        change,
		ChangePercent: pct,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		Timestamp:     ts,
		Source:        sourceName,
	}, true, nil
}
