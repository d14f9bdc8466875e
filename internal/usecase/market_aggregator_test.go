package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/repository"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/fallback"
)

func newAggregator(creds models.Credentials, p Providers, m *fakeMetrics) *MarketAggregator {
	gen := fallback.New(
		fallback.WithRand(func() float64 { return 0.5 }),
		fallback.WithClock(func() time.Time { return testNow }),
	)
	a := NewMarketAggregator(fakeResolver{market: creds}, p, gen, m, nil, AggregatorConfig{TaskTimeout: 100 * time.Millisecond})
	a.now = func() time.Time { return testNow }
	return a
}

func TestAggregateCryptoAndEquity(t *testing.T) {
	gecko := &fakeProvider{name: models.ProviderCoinGecko, cats: []models.MarketCategory{models.CategoryCrypto}, quotes: quoteFor("CoinGecko", 6)}
	av := &fakeProvider{name: models.ProviderAlphaVantage, cats: []models.MarketCategory{models.CategoryEquity}, quotes: quoteFor("Alpha Vantage", 1.2)}
	m := &fakeMetrics{}
	a := newAggregator(models.Credentials{models.ProviderAlphaVantage: "k"}, Providers{Crypto: gecko, Paid: []repository.QuoteProvider{av}}, m)

	res := a.Aggregate(context.Background(), "u1", []string{"btc", "GOOGL"})

	if len(res.Quotes) != 2 {
		t.Fatalf("expected two quotes, got %+v", res.Quotes)
	}
	if res.Quotes[0].Symbol != "BTC" || res.Quotes[0].Source != "CoinGecko" {
		t.Fatalf("unexpected first quote %+v", res.Quotes[0])
	}
	if res.Quotes[1].Symbol != "GOOGL" || res.Quotes[1].Source != "Alpha Vantage" {
		t.Fatalf("unexpected second quote %+v", res.Quotes[1])
	}
	if got := gecko.called(); len(got) != 1 || len(got[0]) != 1 || got[0][0] != "BTC" {
		t.Fatalf("crypto adapter got %v", got)
	}
	if got := av.called(); len(got) != 1 || got[0][0] != "GOOGL" {
		t.Fatalf("equity adapter got %v", got)
	}
	if len(res.Alerts) != 1 || res.Alerts[0].Type != models.AlertHighVolatility || res.Alerts[0].Symbol != "BTC" {
		t.Fatalf("unexpected alerts %+v", res.Alerts)
	}
	if res.Overview.TotalSymbols != 2 || len(res.Overview.Gainers) != 2 || res.Overview.Sentiment != models.SentimentBullish {
		t.Fatalf("unexpected overview %+v", res.Overview)
	}
	if m.fallback != 0 {
		t.Fatalf("no fallback expected")
	}
}

func TestAggregateTotalOutage(t *testing.T) {
	gecko := &fakeProvider{name: models.ProviderCoinGecko, cats: []models.MarketCategory{models.CategoryCrypto}, err: errors.New("503")}
	av := &fakeProvider{name: models.ProviderAlphaVantage, cats: []models.MarketCategory{models.CategoryEquity}, err: errors.New("boom")}
	poly := &fakeProvider{name: models.ProviderPolygon, cats: []models.MarketCategory{models.CategoryEquity}, panics: true}
	fh := &fakeProvider{name: models.ProviderFinnhub, cats: []models.MarketCategory{models.CategoryEquity}, hang: true}
	m := &fakeMetrics{}
	creds := models.Credentials{models.ProviderAlphaVantage: "a", models.ProviderPolygon: "p", models.ProviderFinnhub: "f"}
	a := newAggregator(creds, Providers{Crypto: gecko, Paid: []repository.QuoteProvider{av, poly, fh}}, m)

	symbols := []string{"BTC", "ETH", "AAPL", "FPT", "XYZ"}
	start := time.Now()
	res := a.Aggregate(context.Background(), "", symbols)
	if time.Since(start) > 900*time.Millisecond {
		t.Fatalf("hung provider was not abandoned")
	}

	if len(res.Quotes) != len(symbols) {
		t.Fatalf("expected one quote per symbol, got %d", len(res.Quotes))
	}
	for i, q := range res.Quotes {
		if q.Symbol != symbols[i] || !q.IsDemo() || q.Price <= 0 {
			t.Fatalf("quote %d: %+v", i, q)
		}
	}
	demo := 0
	for _, al := range res.Alerts {
		if al.Severity == models.SeverityLow {
			demo++
		}
	}
	if demo == 0 {
		t.Fatalf("expected demo alerts, got %+v", res.Alerts)
	}
	if m.fallback != len(symbols) {
		t.Fatalf("fallback metric %d", m.fallback)
	}
	if m.outcomes["finnhub"] != "timeout" || m.outcomes["polygon"] != "error" {
		t.Fatalf("unexpected outcomes %v", m.outcomes)
	}
}

func TestAggregateOneQuotePerSymbolAndPriority(t *testing.T) {
	av := &fakeProvider{name: models.ProviderAlphaVantage, cats: []models.MarketCategory{models.CategoryEquity}, quotes: quoteFor("Alpha Vantage", 1)}
	fh := &fakeProvider{name: models.ProviderFinnhub, cats: []models.MarketCategory{models.CategoryEquity}, quotes: quoteFor("Finnhub", 2)}
	creds := models.Credentials{models.ProviderAlphaVantage: "a", models.ProviderFinnhub: "f"}
	a := newAggregator(creds, Providers{Paid: []repository.QuoteProvider{av, fh}}, &fakeMetrics{})

	for i := 0; i < 20; i++ {
		res := a.Aggregate(context.Background(), "u", []string{"AAPL", "MSFT", "AAPL"})
		if len(res.Quotes) != 2 {
			t.Fatalf("expected two quotes, got %+v", res.Quotes)
		}
		for _, q := range res.Quotes {
			if q.Source != "Alpha Vantage" {
				t.Fatalf("earlier provider must win, got %+v", q)
			}
		}
	}
}

func TestAggregateRouting(t *testing.T) {
	av := &fakeProvider{name: models.ProviderAlphaVantage, cats: []models.MarketCategory{models.CategoryEquity, models.CategoryForex}}
	poly := &fakeProvider{name: models.ProviderPolygon, cats: []models.MarketCategory{models.CategoryEquity}}
	yahoo := switchableProvider{&fakeProvider{name: models.ProviderYahoo, cats: []models.MarketCategory{models.CategoryEquity}}, false}
	m := &fakeMetrics{}
	a := newAggregator(models.Credentials{models.ProviderAlphaVantage: "a"}, Providers{Paid: []repository.QuoteProvider{av, poly, yahoo}}, m)

	a.Aggregate(context.Background(), "u", []string{"FPT", "EUR/USD", "AAPL"})

	got := av.called()
	if len(got) != 1 {
		t.Fatalf("alpha vantage calls %v", got)
	}
	want := []string{"EUR/USD", "AAPL", "FPT"}
	if fmt.Sprint(got[0]) != fmt.Sprint(want) {
		t.Fatalf("preferred symbols first: got %v want %v", got[0], want)
	}
	if len(poly.called()) != 0 || len(yahoo.called()) != 0 {
		t.Fatalf("unconfigured adapters must be skipped")
	}
	if m.outcomes["polygon"] != "skipped" || m.outcomes["yahoo_finance"] != "skipped" {
		t.Fatalf("unexpected outcomes %v", m.outcomes)
	}
}

func TestAggregateNewsAlerts(t *testing.T) {
	news := &fakeMarketNews{articles: []models.NewsArticle{
		{Title: "Apple (AAPL) unveils new chips", Source: "Reuters (NewsAPI)", PublishedAt: testNow},
	}}
	creds := models.Credentials{models.ProviderNewsAPI: "n"}
	a := newAggregator(creds, Providers{News: news}, &fakeMetrics{})
	a.cfg.NewsQuerySymbols = 2

	res := a.Aggregate(context.Background(), "u", []string{"MSFT", "AAPL", "TSLA"})
	if len(news.asked) != 2 {
		t.Fatalf("news query symbols %v", news.asked)
	}
	found := false
	for _, al := range res.Alerts {
		if al.Type == models.AlertNewsImpact && al.Symbol == "AAPL" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected news alert, got %+v", res.Alerts)
	}
}

func TestAggregateAlertCap(t *testing.T) {
	av := &fakeProvider{name: models.ProviderAlphaVantage, cats: []models.MarketCategory{models.CategoryEquity}, quotes: quoteFor("Alpha Vantage", 12)}
	a := newAggregator(models.Credentials{models.ProviderAlphaVantage: "a"}, Providers{Paid: []repository.QuoteProvider{av}}, &fakeMetrics{})

	symbols := make([]string, 12)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("S%02d", i)
	}
	res := a.Aggregate(context.Background(), "u", symbols)
	if len(res.Alerts) != a.AlertCap() {
		t.Fatalf("expected %d alerts, got %d", a.AlertCap(), len(res.Alerts))
	}
	for _, al := range res.Alerts {
		if al.Severity != models.SeverityHigh {
			t.Fatalf("cap must keep highest severities first, got %s", al.Severity)
		}
	}
}

func TestCryptoSnapshot(t *testing.T) {
	bin := &fakeProvider{name: models.ProviderBinance, cats: []models.MarketCategory{models.CategoryCrypto}, quotes: quoteFor("Binance", 11)}
	a := newAggregator(nil, Providers{Single: bin}, &fakeMetrics{})

	empty := a.CryptoSnapshot(context.Background(), []string{"AAPL"})
	if len(empty.Quotes) != 0 || empty.Overview.Sentiment != models.SentimentNeutral || empty.Overview.Gainers == nil {
		t.Fatalf("unexpected empty answer %+v", empty)
	}
	if len(bin.called()) != 0 {
		t.Fatalf("no call expected without crypto symbols")
	}

	res := a.CryptoSnapshot(context.Background(), []string{"BTC", "AAPL", "ETH"})
	if len(res.Quotes) != 2 || res.Quotes[0].Source != "Binance" {
		t.Fatalf("unexpected quotes %+v", res.Quotes)
	}
	if len(res.Alerts) > a.SingleFetchAlertCap() {
		t.Fatalf("alerts over cap: %d", len(res.Alerts))
	}
}

func TestCryptoSnapshotNoFallback(t *testing.T) {
	bin := &fakeProvider{name: models.ProviderBinance, err: errors.New("down")}
	a := newAggregator(nil, Providers{Single: bin}, &fakeMetrics{})
	res := a.CryptoSnapshot(context.Background(), []string{"BTC"})
	if len(res.Quotes) != 0 || res.Quotes == nil {
		t.Fatalf("expected empty non-nil quotes, got %+v", res.Quotes)
	}
}

func TestClassify(t *testing.T) {
	a := newAggregator(nil, Providers{}, &fakeMetrics{})
	info := a.Classify("vcb")
	if info.Mapping.PreferredProvider != models.ProviderYahoo || info.Recommendation != "Use yahoo_finance API for VCB" {
		t.Fatalf("unexpected info %+v", info)
	}
}
