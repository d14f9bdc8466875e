package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/repository"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/service"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/classifier"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/fallback"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/signals"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/fanout"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
)

// MarketNewsSource feeds the news-impact alert pass.
type MarketNewsSource interface {
	Name() models.ProviderName
	MarketNews(ctx context.Context, credential string, symbols []string) ([]models.NewsArticle, error)
}

// Switchable is implemented by credential-free adapters gated by configuration.
type Switchable interface {
	Enabled() bool
}

// Providers lists the adapters in priority order. Paid adapters are tried
// in slice order and earlier ones win in the merge.
type Providers struct {
	Crypto repository.QuoteProvider
	Paid   []repository.QuoteProvider
	News   MarketNewsSource
	Single repository.QuoteProvider
}

type AggregatorConfig struct {
	TaskTimeout         time.Duration
	PortfolioAlertCap   int
	SingleFetchAlertCap int
	NewsQuerySymbols    int
}

// MarketAggregator answers every request with one quote per requested
// symbol. Provider failures are logged and counted, never returned.
type MarketAggregator struct {
	creds     service.CredentialResolver
	providers Providers
	fallback  *fallback.Generator
	metrics   repository.Metrics
	log       *applogger.Logger
	cfg       AggregatorConfig
	now       func() time.Time
}

var _ service.MarketService = (*MarketAggregator)(nil)

func NewMarketAggregator(creds service.CredentialResolver, providers Providers, gen *fallback.Generator, m repository.Metrics, l *applogger.Logger, cfg AggregatorConfig) *MarketAggregator {
	if gen == nil {
		gen = fallback.New()
	}
	if m == nil {
		m = repository.NopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 45 * time.Second
	}
	if cfg.PortfolioAlertCap <= 0 {
		cfg.PortfolioAlertCap = signals.PortfolioAlertCap
	}
	if cfg.SingleFetchAlertCap <= 0 {
		cfg.SingleFetchAlertCap = signals.SingleFetchAlertCap
	}
	if cfg.NewsQuerySymbols <= 0 {
		cfg.NewsQuerySymbols = 3
	}
	return &MarketAggregator{
		creds:     creds,
		providers: providers,
		fallback:  gen,
		metrics:   m,
		log:       l,
		cfg:       cfg,
		now:       time.Now,
	}
}

// AlertCap is the cap applied to portfolio alerts.
func (a *MarketAggregator) AlertCap() int { return a.cfg.PortfolioAlertCap }

// SingleFetchAlertCap is the cap applied to the crypto snapshot.
func (a *MarketAggregator) SingleFetchAlertCap() int { return a.cfg.SingleFetchAlertCap }

type partial struct {
	quotes []models.Quote
	alerts []models.Alert
}

func (a *MarketAggregator) Aggregate(ctx context.Context, userID string, symbols []string) models.AggregationResult {
	symbols = normalize(symbols)
	now := a.now().UTC()
	if len(symbols) == 0 {
		return emptyResult(now)
	}

	creds := models.Credentials{}
	if a.creds != nil {
		creds = a.creds.ForMarket(ctx, userID)
	}
	tasks := a.plan(symbols, creds)
	results := fanout.All(ctx, a.cfg.TaskTimeout, tasks)

	var quotes []models.Quote
	var newsAlerts []models.Alert
	for _, r := range results {
		a.observe(r)
		if !r.OK() {
			continue
		}
		quotes = append(quotes, r.Value.quotes...)
		newsAlerts = append(newsAlerts, r.Value.alerts...)
	}

	merged := Merge(quotes)
	var demoAlerts []models.Alert
	if gap := missing(symbols, merged); len(gap) > 0 {
		a.log.Info("serving demo data", applogger.Strings("symbols", gap))
		demo, alerts := a.fallback.Generate(gap)
		merged = append(merged, demo...)
		demoAlerts = alerts
		a.metrics.RecordFallback(len(gap))
	}

	alerts := signals.Generate(merged, now)
	alerts = append(alerts, newsAlerts...)
	alerts = append(alerts, demoAlerts...)
	alerts = signals.Prioritize(alerts, a.cfg.PortfolioAlertCap)
	for _, al := range alerts {
		a.metrics.RecordAlert(string(al.Type), string(al.Severity))
	}

	return models.AggregationResult{
		Quotes:   merged,
		Alerts:   alerts,
		Overview: signals.Synthesize(merged, now),
	}
}

func (a *MarketAggregator) Alerts(ctx context.Context, userID string, symbols []string) []models.Alert {
	return a.Aggregate(ctx, userID, symbols).Alerts
}

func (a *MarketAggregator) Classify(symbol string) models.SymbolInfo {
	c := classifier.Classify(symbol)
	return models.SymbolInfo{Mapping: c, Recommendation: classifier.Recommendation(c)}
}

// CryptoSnapshot reads the crypto subset from the single-fetch exchange
// adapter. Symbols it cannot price are left out.
func (a *MarketAggregator) CryptoSnapshot(ctx context.Context, symbols []string) models.AggregationResult {
	now := a.now().UTC()
	crypto, _ := classifier.Partition(normalize(symbols))
	if len(crypto) == 0 || a.providers.Single == nil {
		return emptyResult(now)
	}

	single := a.providers.Single
	syms := symbolsOf(crypto)
	res := fanout.All(ctx, a.cfg.TaskTimeout, []fanout.Task[partial]{{
		Name: string(single.Name()),
		Run: func(ctx context.Context) (partial, error) {
			q, err := single.Fetch(ctx, syms, "")
			return partial{quotes: q}, err
		},
	}})[0]
	a.observe(res)

	quotes := Merge(res.Value.quotes)
	alerts := signals.Prioritize(signals.Generate(quotes, now), a.cfg.SingleFetchAlertCap)
	return models.AggregationResult{
		Quotes:   quotes,
		Alerts:   alerts,
		Overview: signals.Synthesize(quotes, now),
	}
}

// plan builds the tasks in launch order: crypto, paid adapters, news pass.
func (a *MarketAggregator) plan(symbols []string, creds models.Credentials) []fanout.Task[partial] {
	crypto, other := classifier.Partition(symbols)
	var tasks []fanout.Task[partial]

	if p := a.providers.Crypto; p != nil && len(crypto) > 0 {
		tasks = append(tasks, quoteTask(p, symbolsOf(crypto), ""))
	}

	for _, p := range a.providers.Paid {
		cred := creds.Get(p.Name())
		if sw, ok := p.(Switchable); ok {
			if !sw.Enabled() {
				a.metrics.RecordProviderCall(string(p.Name()), "skipped", 0, 0)
				continue
			}
		} else if cred == "" {
			a.metrics.RecordProviderCall(string(p.Name()), "skipped", 0, 0)
			continue
		}
		syms := routeTo(p, other)
		if len(syms) == 0 {
			continue
		}
		tasks = append(tasks, quoteTask(p, syms, cred))
	}

	if n := a.providers.News; n != nil && creds.Has(n.Name()) {
		query := symbols
		if len(query) > a.cfg.NewsQuerySymbols {
			query = query[:a.cfg.NewsQuerySymbols]
		}
		cred := creds.Get(n.Name())
		tasks = append(tasks, fanout.Task[partial]{
			Name: string(n.Name()),
			Run: func(ctx context.Context) (partial, error) {
				articles, err := n.MarketNews(ctx, cred, query)
				if err != nil {
					return partial{}, err
				}
				return partial{alerts: signals.NewsAlerts(articles, symbols, a.now().UTC())}, nil
			},
		})
	}
	return tasks
}

func quoteTask(p repository.QuoteProvider, symbols []string, cred string) fanout.Task[partial] {
	return fanout.Task[partial]{
		Name: string(p.Name()),
		Run: func(ctx context.Context) (partial, error) {
			q, err := p.Fetch(ctx, symbols, cred)
			return partial{quotes: q}, err
		},
	}
}

// routeTo picks the symbols p can serve, its preferred symbols first.
func routeTo(p repository.QuoteProvider, cs []models.Classification) []string {
	ca, _ := p.(repository.CategoryAware)
	var preferred, rest []string
	for _, c := range cs {
		if ca != nil && !ca.Supports(c.Category) {
			continue
		}
		if c.PreferredProvider == p.Name() {
			preferred = append(preferred, c.Symbol)
		} else {
			rest = append(rest, c.Symbol)
		}
	}
	return append(preferred, rest...)
}

func (a *MarketAggregator) observe(r fanout.Result[partial]) {
	outcome := "ok"
	n := len(r.Value.quotes)
	switch {
	case errors.Is(r.Err, context.DeadlineExceeded):
		outcome = "timeout"
	case r.Err != nil:
		outcome = "error"
	case n == 0 && len(r.Value.alerts) == 0:
		outcome = "empty"
	}
	if r.Err != nil {
		a.log.Warn("provider failed",
			applogger.String("provider", r.Name),
			applogger.Duration("elapsed", r.Elapsed),
			applogger.Error(r.Err))
	}
	a.metrics.RecordProviderCall(r.Name, outcome, n, r.Elapsed)
}

func emptyResult(now time.Time) models.AggregationResult {
	return models.AggregationResult{
		Quotes:   []models.Quote{},
		Alerts:   []models.Alert{},
		Overview: signals.Synthesize(nil, now),
	}
}

func normalize(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = models.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func symbolsOf(cs []models.Classification) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Symbol
	}
	return out
}
