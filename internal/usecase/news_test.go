package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/repository"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/cache"
)

type fakeNews struct {
	name     models.ProviderName
	articles []models.NewsArticle
	err      error
	calls    int
	creds    []string
}

func (f *fakeNews) Name() models.ProviderName { return f.name }

func (f *fakeNews) Latest(_ context.Context, cred string, _ int) ([]models.NewsArticle, error) {
	f.calls++
	f.creds = append(f.creds, cred)
	return f.articles, f.err
}

type searchingNews struct {
	*fakeNews
	query string
}

func (s *searchingNews) Search(_ context.Context, _, query string, _ int) ([]models.NewsArticle, error) {
	s.query = query
	return s.articles, nil
}

type tickerNews struct {
	*fakeNews
	ticker string
}

func (t *tickerNews) ForTicker(_ context.Context, _, ticker string, _ int) ([]models.NewsArticle, error) {
	t.ticker = ticker
	return t.articles, nil
}

func article(title string, hoursAgo int, cat models.NewsCategory) models.NewsArticle {
	return models.NewsArticle{
		Title:       title,
		URL:         "https://example.com/" + title,
		PublishedAt: testNow.Add(-time.Duration(hoursAgo) * time.Hour),
		Category:    cat,
	}
}

func TestNewsAllDedupAndSort(t *testing.T) {
	av := &fakeNews{name: models.ProviderAlphaVantage, articles: []models.NewsArticle{
		article("Fed holds rates", 3, models.NewsGeneral),
		article("Bitcoin tops 70k", 1, models.NewsCrypto),
	}}
	na := &fakeNews{name: models.ProviderNewsAPI, articles: []models.NewsArticle{
		article("fed  holds RATES", 0, models.NewsGeneral),
		article("Apple earnings beat", 2, models.NewsStock),
	}}
	poly := &fakeNews{name: models.ProviderPolygon, err: errors.New("down")}
	creds := models.Credentials{models.ProviderAlphaVantage: "a", models.ProviderNewsAPI: "n", models.ProviderPolygon: "p"}
	svc := NewNewsAggregator(fakeResolver{news: creds}, []repository.NewsProvider{av, na, poly}, nil, nil, nil, NewsConfig{})

	got, err := svc.All(context.Background(), "u", 10)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected three unique articles, got %+v", got)
	}
	want := []string{"Bitcoin tops 70k", "Apple earnings beat", "Fed holds rates"}
	for i, w := range want {
		if got[i].Title != w {
			t.Fatalf("position %d: got %q want %q", i, got[i].Title, w)
		}
	}
}

func TestNewsSkipsProvidersWithoutKey(t *testing.T) {
	av := &fakeNews{name: models.ProviderAlphaVantage}
	na := &fakeNews{name: models.ProviderNewsAPI, articles: []models.NewsArticle{article("x", 0, models.NewsStock)}}
	svc := NewNewsAggregator(fakeResolver{news: models.Credentials{models.ProviderNewsAPI: "n"}}, []repository.NewsProvider{av, na}, nil, nil, nil, NewsConfig{})

	if _, err := svc.All(context.Background(), "", 5); err != nil {
		t.Fatalf("all: %v", err)
	}
	if av.calls != 0 || na.calls != 1 || na.creds[0] != "n" {
		t.Fatalf("unexpected calls av=%d na=%d", av.calls, na.calls)
	}
}

func TestNewsCacheAndCategory(t *testing.T) {
	na := &fakeNews{name: models.ProviderNewsAPI, articles: []models.NewsArticle{
		article("Bitcoin tops 70k", 1, models.NewsCrypto),
		article("Apple earnings beat", 2, models.NewsStock),
	}}
	svc := NewNewsAggregator(fakeResolver{news: models.Credentials{models.ProviderNewsAPI: "n"}},
		[]repository.NewsProvider{na}, cache.NewTTLCache(16), nil, nil, NewsConfig{CacheTTL: time.Minute})

	crypto, err := svc.ByCategory(context.Background(), "u", models.NewsCrypto, 10)
	if err != nil || len(crypto) != 1 || crypto[0].Category != models.NewsCrypto {
		t.Fatalf("unexpected category result %v %+v", err, crypto)
	}
	if _, err := svc.ByCategory(context.Background(), "u", models.NewsStock, 10); err != nil {
		t.Fatalf("category: %v", err)
	}
	if na.calls != 1 {
		t.Fatalf("second call should be served from cache, provider called %d times", na.calls)
	}
}

func TestNewsSearchAndTicker(t *testing.T) {
	creds := models.Credentials{models.ProviderNewsAPI: "n", models.ProviderPolygon: "p", models.ProviderAlphaVantage: "a"}
	search := &searchingNews{fakeNews: &fakeNews{name: models.ProviderNewsAPI, articles: []models.NewsArticle{article("Rates", 0, models.NewsGeneral)}}}
	ticker := &tickerNews{fakeNews: &fakeNews{name: models.ProviderPolygon, articles: []models.NewsArticle{article("AAPL news", 0, models.NewsStock)}}}
	plain := &fakeNews{name: models.ProviderAlphaVantage}
	svc := NewNewsAggregator(fakeResolver{news: creds}, []repository.NewsProvider{plain, search, ticker}, nil, nil, nil, NewsConfig{})

	got, err := svc.Search(context.Background(), "u", "  interest rates ", 5)
	if err != nil || len(got) != 1 || search.query != "interest rates" {
		t.Fatalf("search: %v %+v %q", err, got, search.query)
	}
	got, err = svc.ForTicker(context.Background(), "u", "aapl", 5)
	if err != nil || len(got) != 1 || ticker.ticker != "AAPL" {
		t.Fatalf("ticker: %v %+v %q", err, got, ticker.ticker)
	}
	if plain.calls != 0 {
		t.Fatalf("plain provider must not be used for search or ticker")
	}
}

func TestNewsStatusMasksKeys(t *testing.T) {
	creds := models.Credentials{models.ProviderNewsAPI: "abcdef123", models.ProviderFinnhub: "zzzzzz"}
	svc := NewNewsAggregator(fakeResolver{news: creds}, nil, nil, nil, nil, NewsConfig{})

	st := svc.Status(context.Background(), "u")
	if !st.NewsAPI || st.AlphaVantage || st.Polygon {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.Keys[models.ProviderNewsAPI] != "abcd****" {
		t.Fatalf("unexpected mask %v", st.Keys)
	}
	if _, ok := st.Keys[models.ProviderFinnhub]; ok {
		t.Fatalf("non-news keys must not be reported")
	}
}

func TestNewsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewNewsAggregator(fakeResolver{}, nil, nil, nil, nil, NewsConfig{})
	if _, err := svc.All(ctx, "u", 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
