// Package fallback produces clearly tagged placeholder quotes for symbols no
// live provider answered. It cannot fail.
package fallback

import (
	"math/rand/v2"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/signals"

	"github.com/shopspring/decimal"
)

const (
	priceJitter  = 0.025 // +/- share of the seed price
	changeJitter = 0.5   // +/- percentage points
)

type seed struct {
	price         float64
	changePercent float64
	volume        float64
}

var seeds = map[string]seed{
	"GOOGL": {182.45, 1.98, 1_500_000},
	"AAPL":  {228.50, 0.65, 48_000_000},
	"MSFT":  {415.20, -0.35, 21_000_000},
	"TSLA":  {248.30, 2.40, 95_000_000},
	"BTC":   {97_450, 1.30, 25_000},
	"ETH":   {3_450, 2.10, 410_000},
	"FPT":   {112_500, 0.45, 890_000},
	"VCB":   {92_300, -0.20, 1_200_000},
}

var genericSeed = seed{price: 100, changePercent: 0, volume: 100_000}

// Generator builds synthetic quotes from a fixed seed table with bounded jitter.
type Generator struct {
	rnd func() float64 // uniform in [0,1)
	now func() time.Time
}

type Option func(*Generator)

// WithRand injects the random source, mainly for deterministic tests.
func WithRand(f func() float64) Option {
	return func(g *Generator) { g.rnd = f }
}

// WithClock injects the clock.
func WithClock(f func() time.Time) Option {
	return func(g *Generator) { g.now = f }
}

func New(opts ...Option) *Generator {
	g := &Generator{rnd: rand.Float64, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate returns exactly one quote and one low-severity demo alert per
// symbol, in input order.
func (g *Generator) Generate(symbols []string) ([]models.Quote, []models.Alert) {
	now := g.now().UTC()
	quotes := make([]models.Quote, 0, len(symbols))
	alerts := make([]models.Alert, 0, len(symbols))

	for _, sym := range symbols {
		quotes = append(quotes, g.quote(sym, now))
		alerts = append(alerts, signals.DemoAlert(sym, now))
	}
	return quotes, alerts
}

func (g *Generator) quote(sym string, now time.Time) models.Quote {
	s, ok := seeds[sym]
	if !ok {
		s = genericSeed
	}

	price := decimal.NewFromFloat(s.price).
		Mul(decimal.NewFromFloat(1 + g.jitter(priceJitter))).
		Round(2)
	// a seed is always positive and the jitter is bounded, but rounding a tiny
	// price could still reach zero
	if !price.IsPositive() {
		price = decimal.New(1, -2)
	}

	cp := decimal.NewFromFloat(s.changePercent + g.jitter(changeJitter)).Round(2)
	change := price.Mul(cp).Div(decimal.NewFromInt(100)).Round(2)

	return models.Quote{
		Symbol:        sym,
		Price:         price.InexactFloat64(),
		Change:        change.InexactFloat64(),
		ChangePercent: cp.InexactFloat64(),
		Volume:        s.volume,
		Timestamp:     now,
		Source:        models.SourceDemo,
	}
}

// jitter maps the random source onto [-width, width).
func (g *Generator) jitter(width float64) float64 {
	return (g.rnd()*2 - 1) * width
}
