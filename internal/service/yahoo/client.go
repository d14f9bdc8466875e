package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/classifier"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"

	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
)

const sourceName = "Yahoo Finance"

type getter func(symbol string) (*finance.Quote, error)

// Client reads delayed quotes from the public Yahoo endpoint. It needs no
// credential and is switched on by configuration.
type Client struct {
	base    *upstream.Base
	enabled bool
	get     getter
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	return &Client{
		base:    upstream.NewBase(models.ProviderYahoo, cfg, l),
		enabled: cfg.Enabled,
		get:     quote.Get,
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderYahoo }

func (c *Client) Supports(cat models.MarketCategory) bool {
	return cat == models.CategoryEquity || cat == models.CategoryForex
}

// Enabled reports whether the adapter takes part in aggregation.
func (c *Client) Enabled() bool { return c.enabled }

func (c *Client) Fetch(ctx context.Context, symbols []string, _ string) ([]models.Quote, error) {
	if !c.enabled {
		return nil, nil
	}
	return c.base.Sequential(ctx, c.base.Limit(symbols), func(ctx context.Context, sym string) (models.Quote, bool, error) {
		q, err := c.lookup(ctx, apiSymbol(sym))
		if err != nil {
			return models.Quote{}, false, err
		}
		return toQuote(sym, q)
	})
}

// apiSymbol maps EUR/USD to EURUSD=X and regional equities to their suffixed form.
func apiSymbol(sym string) string {
	cl := classifier.Classify(sym)
	if cl.Category == models.CategoryForex {
		return strings.ReplaceAll(cl.Symbol, "/", "") + "=X"
	}
	return cl.APISymbol
}

func (c *Client) lookup(ctx context.Context, apiSymbol string) (*finance.Quote, error) {
	type answer struct {
		q   *finance.Quote
		err error
	}
	done := make(chan answer, 1)
	go func() {
		q, err := c.get(apiSymbol)
		done <- answer{q, err}
	}()
	select {
	case a := <-done:
		if a.err != nil {
			return nil, fmt.Errorf("yahoo quote %s: %w", apiSymbol, a.err)
		}
		return a.q, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func toQuote(sym string, q *finance.Quote) (models.Quote, bool, error) {
	if q == nil || q.RegularMarketPrice <= 0 {
		return models.Quote{}, false, nil
	}
	ts := time.Now().UTC()
	if q.RegularMarketTime > 0 {
		ts = time.Unix(int64(q.RegularMarketTime), 0).UTC()
	}
	return models.Quote{
		Symbol:        sym,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Open:          q.RegularMarketOpen,
		High:          q.RegularMarketDayHigh,
		Low:           q.RegularMarketDayLow,
		Volume:        float64(q.RegularMarketVolume),
		Timestamp:     ts,
		Source:        sourceName,
	}, true, nil
}
