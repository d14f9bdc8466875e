package polygon

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"

	polygonrest "github.com/polygon-io/client-go/rest"
	rmodels "github.com/polygon-io/client-go/rest/models"
)

const sourceName = "Polygon.io"

// prevCloser is the slice of the polygon REST client used for quotes.
type prevCloser interface {
	GetPreviousCloseAgg(ctx context.Context, params *rmodels.GetPreviousCloseAggParams, opts ...rmodels.RequestOption) (*rmodels.GetPreviousCloseAggResponse, error)
}

// Client quotes equities from the previous-day aggregate. The free tier
// allows five calls a minute, so calls are paced.
type Client struct {
	base      *upstream.Base
	newClient func(apiKey string) prevCloser
	now       func() time.Time
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	timeout := cfg.Timeout
	return &Client{
		base: upstream.NewBase(models.ProviderPolygon, cfg, l),
		newClient: func(apiKey string) prevCloser {
			return polygonrest.NewWithClient(apiKey, &http.Client{Timeout: timeout})
		},
		now: time.Now,
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderPolygon }

func (c *Client) Supports(cat models.MarketCategory) bool { return cat == models.CategoryEquity }

func (c *Client) Fetch(ctx context.Context, symbols []string, apiKey string) ([]models.Quote, error) {
	if apiKey == "" {
		return nil, nil
	}
	rest := c.newClient(apiKey)
	adjusted := true

	return c.base.Sequential(ctx, c.base.Limit(symbols), func(ctx context.Context, sym string) (models.Quote, bool, error) {
		res, err := rest.GetPreviousCloseAgg(ctx, &rmodels.GetPreviousCloseAggParams{
			Ticker:   sym,
			Adjusted: &adjusted,
		})
		if err != nil {
			return models.Quote{}, false, upstream.Redact(fmt.Errorf("polygon prev close %s: %w", sym, err), apiKey)
		}
		if res == nil || len(res.Results) == 0 {
			return models.Quote{}, false, nil
		}
		return fromAgg(sym, res.Results[0], c.now().UTC())
	})
}

func fromAgg(sym string, a rmodels.Agg, now time.Time) (models.Quote, bool, error) {
	if a.Close <= 0 {
		return models.Quote{}, false, nil
	}
	change := a.Close - a.Open
	var pct float64
	if a.Open > 0 {
		pct = change / a.Open * 100
	}
	ts := time.Time(a.Timestamp)
	if ts.IsZero() {
		ts = now
	}
	return models.Quote{
		Symbol:        sym,
		Price:         a.Close,
		Change:        change,
		ChangePercent: pct,
		Volume:        a.Volume,
		High:          a.High,
		Low:           a.Low,
		Open:          a.Open,
		Timestamp:     ts.UTC(),
		Source:        sourceName,
	}, true, nil
}
