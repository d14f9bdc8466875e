package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

type fakeResolver struct {
	market models.Credentials
	news   models.Credentials
}

func (f fakeResolver) ForMarket(context.Context, string) models.Credentials { return f.market }
func (f fakeResolver) ForNews(context.Context, string) models.Credentials   { return f.news }

type fakeProvider struct {
	name   models.ProviderName
	cats   []models.MarketCategory
	quotes func(symbols []string) []models.Quote
	err    error
	panics bool
	hang   bool

	mu    sync.Mutex
	calls [][]string
}

func (f *fakeProvider) Name() models.ProviderName { return f.name }

func (f *fakeProvider) Supports(c models.MarketCategory) bool {
	for _, x := range f.cats {
		if x == c {
			return true
		}
	}
	return false
}

func (f *fakeProvider) Fetch(ctx context.Context, symbols []string, _ string) ([]models.Quote, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbols)
	f.mu.Unlock()
	switch {
	case f.panics:
		panic("provider exploded")
	case f.hang:
		time.Sleep(time.Second)
		return nil, nil
	case f.err != nil:
		return nil, f.err
	}
	if f.quotes == nil {
		return nil, nil
	}
	return f.quotes(symbols), nil
}

func (f *fakeProvider) called() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type switchableProvider struct {
	*fakeProvider
	on bool
}

func (s switchableProvider) Enabled() bool { return s.on }

func quoteFor(source string, cp float64) func([]string) []models.Quote {
	return func(symbols []string) []models.Quote {
		out := make([]models.Quote, 0, len(symbols))
		for _, s := range symbols {
			out = append(out, models.Quote{Symbol: s, Price: 100, ChangePercent: cp, Source: source, Timestamp: testNow})
		}
		return out
	}
}

type fakeMarketNews struct {
	articles []models.NewsArticle
	asked    []string
}

func (f *fakeMarketNews) Name() models.ProviderName { return models.ProviderNewsAPI }

func (f *fakeMarketNews) MarketNews(_ context.Context, _ string, symbols []string) ([]models.NewsArticle, error) {
	f.asked = symbols
	return f.articles, nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]string
	fallback int
}

func (m *fakeMetrics) RecordProviderCall(provider, outcome string, _ int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]string{}
	}
	m.outcomes[provider] = outcome
}
func (m *fakeMetrics) RecordFallback(n int)       { m.fallback += n }
func (m *fakeMetrics) RecordAlert(string, string) {}
func (m *fakeMetrics) RecordCache(bool)           {}

var testNow = time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)
