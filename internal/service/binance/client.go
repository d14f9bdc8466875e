package binance

import (
	"context"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/upstream"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/classifier"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/util"
)

const sourceName = "Binance"

// Client reads 24h rolling tickers for USDT pairs. No credential is needed.
type Client struct {
	base *upstream.Base
	now  func() time.Time
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	return &Client{
		base: upstream.NewBase(models.ProviderBinance, cfg, l),
		now:  time.Now,
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderBinance }

func (c *Client) Supports(cat models.MarketCategory) bool { return cat == models.CategoryCrypto }

type ticker struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	PriceChange string `json:"priceChange"`
	ChangePct   string `json:"priceChangePercent"`
	Open        string `json:"openPrice"`
	High        string `json:"highPrice"`
	Low         string `json:"lowPrice"`
	QuoteVolume string `json:"quoteVolume"`
	CloseTime   int64  `json:"closeTime"`
}

// PairSymbol maps BTC or BTC/USDT to the exchange pair BTCUSDT.
func PairSymbol(sym string) string {
	return classifier.Base(sym) + "USDT"
}

func (c *Client) Fetch(ctx context.Context, symbols []string, _ string) ([]models.Quote, error) {
	return c.base.Sequential(ctx, c.base.Limit(symbols), func(ctx context.Context, sym string) (models.Quote, bool, error) {
		var t ticker
		err := c.base.GetJSON(ctx, "/api/v3/ticker/24hr", map[string][]string{
			"symbol": {PairSymbol(sym)},
		}, nil, &t)
		if err != nil {
			return models.Quote{}, false, err
		}
		return toQuote(sym, t, c.now().UTC())
	})
}

func toQuote(sym string, t ticker, now time.Time) (models.Quote, bool, error) {
	price, ok := util.ParseFloat(t.LastPrice)
	if !ok || price <= 0 {
		return models.Quote{}, false, nil
	}
	num := func(s string) float64 {
		v, _ := util.ParseFloat(strings.TrimSpace(s))
		return v
	}
	ts := now
	if t.CloseTime > 0 {
		ts = util.FromUnixAuto(t.CloseTime).UTC()
	}
	return models.Quote{
		Symbol:        sym,
		Price:         price,
		Change:        num(t.PriceChange),
		ChangePercent: num(t.ChangePct),
		Open:          num(t.Open),
		High:          num(t.High),
		Low:           num(t.Low),
		Volume:        num(t.QuoteVolume),
		Timestamp:     ts,
		Source:        sourceName,
	}, true, nil
}
