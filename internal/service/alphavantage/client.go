package alphavantage

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

	"github.com/tidwall/gjson"
)

const sourceName = "Alpha Vantage"

// Client serves equities through GLOBAL_QUOTE and forex pairs through
// CURRENCY_EXCHANGE_RATE. The free tier allows about five calls a minute, so
// calls are sequential and paced.
type Client struct {
	base *upstream.Base
	now  func() time.Time
}

func New(cfg config.ProviderConfig, l *applogger.Logger) *Client {
	return &Client{
		base: upstream.NewBase(models.ProviderAlphaVantage, cfg, l),
		now:  time.Now,
	}
}

func (c *Client) Name() models.ProviderName { return models.ProviderAlphaVantage }

func (c *Client) Supports(cat models.MarketCategory) bool {
	return cat == models.CategoryEquity || cat == models.CategoryForex
}

func (c *Client) Fetch(ctx context.Context, symbols []string, apiKey string) ([]models.Quote, error) {
	if apiKey == "" {
		return nil, nil
	}
	return c.base.Sequential(ctx, c.base.Limit(symbols), func(ctx context.Context, sym string) (models.Quote, bool, error) {
		if classifier.Classify(sym).Category == models.CategoryForex {
			return c.exchangeRate(ctx, sym, apiKey)
		}
		return c.globalQuote(ctx, sym, apiKey)
	})
}

func (c *Client) query(ctx context.Context, params map[string][]string, apiKey string) (gjson.Result, bool, error) {
	params["apikey"] = []string{apiKey}
	var body []byte
	if err := c.base.GetJSON(ctx, "/query", params, nil, &body, apiKey); err != nil {
		return gjson.Result{}, false, err
	}
	if !gjson.ValidBytes(body) {
		c.base.Log.Debug("malformed payload")
		return gjson.Result{}, false, nil
	}
	res := gjson.ParseBytes(body)
	if note := rateLimitNote(res); note != "" {
		c.base.Log.Warn("rate limit note", applogger.String("note", util.Truncate(note, 120)))
		return gjson.Result{}, false, nil
	}
	return res, true, nil
}

// rateLimitNote returns the throttling message the API sends with HTTP 200.
func rateLimitNote(res gjson.Result) string {
	for _, k := range []string{"Note", "Information"} {
		if v := res.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

func (c *Client) globalQuote(ctx context.Context, sym, apiKey string) (models.Quote, bool, error) {
	res, ok, err := c.query(ctx, map[string][]string{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {sym},
	}, apiKey)
	if err != nil || !ok {
		return models.Quote{}, false, err
	}
	return parseGlobalQuote(res.Get("Global Quote"), sym, c.now().UTC())
}

func parseGlobalQuote(gq gjson.Result, sym string, now time.Time) (models.Quote, bool, error) {
	if !gq.IsObject() {
		return models.Quote{}, false, nil
	}
	price, ok := util.ParseFloat(gq.Get(`05\. price`).String())
	if !ok || price <= 0 {
		return models.Quote{}, false, nil
	}
	num := func(key string) float64 {
		v, _ := util.ParseFloat(gq.Get(key).String())
		return v
	}

	symbol := models.NormalizeSymbol(gq.Get(`01\. symbol`).String())
	if symbol == "" {
		symbol = sym
	}
	return models.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        num(`09\. change`),
		ChangePercent: num(`10\. change percent`),
		Open:          num(`02\. open`),
		High:          num(`03\. high`),
		Low:           num(`04\. low`),
		Volume:        num(`06\. volume`),
		Timestamp:     now,
		Source:        sourceName,
	}, true, nil
}

func (c *Client) exchangeRate(ctx context.Context, pair, apiKey string) (models.Quote, bool, error) {
	from, to, _ := strings.Cut(pair, "/")
	res, ok, err := c.query(ctx, map[string][]string{
		"function":      {"CURRENCY_EXCHANGE_RATE"},
		"from_currency": {from},
		"to_currency":   {to},
	}, apiKey)
	if err != nil || !ok {
		return models.Quote{}, false, err
	}

	rate := res.Get("Realtime Currency Exchange Rate")
	price, ok := util.ParseFloat(rate.Get(`5\. Exchange Rate`).String())
	if !ok || price <= 0 {
		return models.Quote{}, false, nil
	}
	ts := c.now().UTC()
	if t, err := time.Parse("2006-01-02 15:04:05", rate.Get(`6\. Last Refreshed`).String()); err == nil {
		ts = t.UTC()
	}
	bid, _ := util.ParseFloat(rate.Get(`8\. Bid Price`).String())
	ask, _ := util.ParseFloat(rate.Get(`9\. Ask Price`).String())

	return models.Quote{
		Symbol:    pair,
		Price:     price,
		Low:       bid,
		High:      ask,
		Timestamp: ts,
		Source:    sourceName,
	}, true, nil
}
