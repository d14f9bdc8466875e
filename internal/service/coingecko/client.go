package coingecko

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/classifier"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
)

const sourceName = "CoinGecko"

// Client reads the free simple/price endpoint. It needs no credential.
type Client struct {
	base *upstream.Base
	now  func() time.Time
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	return &Client{
		base: upstream.NewBase(models.ProviderCoinGecko, cfg, l),
		now:  time.Now,
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderCoinGecko }

func (c *Client) Supports(cat models.MarketCategory) bool { return cat == models.CategoryCrypto }

type coin struct {
	USD       *float64 `json:"usd"`
	Change24h float64  `json:"usd_24h_change"`
	Vol24h    float64  `json:"usd_24h_vol"`
}

// Fetch issues one batched call for every symbol. The credential is ignored.
func (c *Client) Fetch(ctx context.Context, symbols []string, _ string) ([]models.Quote, error) {
	symbols = c.base.Limit(symbols)
	if len(symbols) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		id := classifier.CoinGeckoID(s)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var raw map[string]json.RawMessage
	err := c.base.GetJSONWithRetry(ctx, "/simple/price", map[string][]string{
		"ids":                 {strings.Join(ids, ",")},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
		"include_24hr_vol":    {"true"},
	}, &raw, 2)
	if err != nil {
		return nil, err
	}

	now := c.now().UTC()
	quotes := make([]models.Quote, 0, len(symbols))
	for _, s := range symbols {
		entry, ok := raw[classifier.CoinGeckoID(s)]
		if !ok {
			continue
		}
		var cd coin
		if err := json.Unmarshal(entry, &cd); err != nil || cd.USD == nil || *cd.USD <= 0 {
			c.base.Log.Debug("malformed coin entry", applogger.String("symbol", s))
			continue
		}
		price := *cd.USD
		quotes = append(quotes, models.Quote{
			Symbol:        models.NormalizeSymbol(s),
			Price:         price,
			Change:        price * cd.Change24h / 100,
			ChangePercent: cd.Change24h,
			Volume:        math.Round(cd.Vol24h / price),
			Timestamp:     now,
			Source:        sourceName,
		})
	}
	return quotes, nil
}
