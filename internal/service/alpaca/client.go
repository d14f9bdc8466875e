package alpaca

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

const sourceName = "Alpaca"

type snapshotter interface {
	GetSnapshots(symbols []string, req marketdata.GetSnapshotRequest) (map[string]*marketdata.Snapshot, error)
}

// Client batches every symbol into one snapshots call. The credential is
// "KEY:SECRET" as stored in the user settings.
type Client struct {
	base      *upstream.Base
	newClient func(key, secret string) snapshotter
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	baseURL := cfg.BaseURL
	return &Client{
		base: upstream.NewBase(models.ProviderAlpaca, cfg, l),
		newClient: func(key, secret string) snapshotter {
			return marketdata.NewClient(marketdata.ClientOpts{
				APIKey:    key,
				APISecret: secret,
				BaseURL:   baseURL,
			})
		},
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderAlpaca }

func (c *Client) Supports(cat models.MarketCategory) bool { return cat == models.CategoryEquity }

// SplitCredential separates "KEY:SECRET". ok is false for anything else.
func SplitCredential(cred string) (key, secret string, ok bool) {
	key, secret, ok = strings.Cut(cred, ":")
	return key, secret, ok && key != "" && secret != ""
}

func (c *Client) Fetch(ctx context.Context, symbols []string, credential string) ([]models.Quote, error) {
	key, secret, ok := SplitCredential(credential)
	if !ok {
		return nil, nil
	}
	symbols = c.base.Limit(symbols)
	if len(symbols) == 0 {
		return nil, nil
	}

	type answer struct {
		snaps map[string]*marketdata.Snapshot
		err   error
	}
	// the SDK call takes no context
	done := make(chan answer, 1)
	client := c.newClient(key, secret)
	go func() {
		snaps, err := client.GetSnapshots(symbols, marketdata.GetSnapshotRequest{})
		done <- answer{snaps, err}
	}()

	var res answer
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, upstream.Redact(fmt.Errorf("alpaca snapshots: %w", res.err), key, secret)
	}

	quotes := make([]models.Quote, 0, len(symbols))
	for _, sym := range symbols {
		q, ok := fromSnapshot(sym, res.snaps[sym])
		if !ok {
			c.base.Log.Debug("symbol dropped", applogger.String("symbol", sym))
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func fromSnapshot(sym string, s *marketdata.Snapshot) (models.Quote, bool) {
	if s == nil {
		return models.Quote{}, false
	}
	q := models.Quote{Symbol: sym, Source: sourceName}
	if s.LatestTrade != nil {
		q.Price = s.LatestTrade.Price
		q.Timestamp = s.LatestTrade.Timestamp.UTC()
	}
	if bar := s.DailyBar; bar != nil {
		if q.Price <= 0 {
			q.Price = bar.Close
			q.Timestamp = bar.Timestamp.UTC()
		}
		q.Open = bar.Open
		q.High = bar.High
		q.Low = bar.Low
		q.Volume = float64(bar.Volume)
	}
	if q.Price <= 0 {
		return models.Quote{}, false
	}
	if prev := s.PrevDailyBar; prev != nil && prev.Close > 0 {
		q.Change = q.Price - prev.Close
		q.ChangePercent = q.Change / prev.Close * 100
	}
	if q.Timestamp.IsZero() {
		q.Timestamp = time.Now().UTC()
	}
	return q, true
}
