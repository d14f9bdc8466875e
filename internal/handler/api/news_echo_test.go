package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"

	"github.com/labstack/echo/v4"
)

type fakeNewsService struct {
	cat    models.NewsCategory
	query  string
	ticker string
	limit  int
	err    error
}

func (f *fakeNewsService) articles() []models.NewsArticle {
	return []models.NewsArticle{{ID: "1", Title: "t", URL: "u", Category: models.NewsStock}}
}

func (f *fakeNewsService) All(_ context.Context, _ string, limit int) ([]models.NewsArticle, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.articles(), nil
}

func (f *fakeNewsService) ByCategory(_ context.Context, _ string, cat models.NewsCategory, _ int) ([]models.NewsArticle, error) {
	f.cat = cat
	return f.articles(), nil
}

func (f *fakeNewsService) Search(_ context.Context, _, query string, _ int) ([]models.NewsArticle, error) {
	f.query = query
	return nil, f.err
}

func (f *fakeNewsService) ForTicker(_ context.Context, _, ticker string, _ int) ([]models.NewsArticle, error) {
	f.ticker = ticker
	return f.articles(), nil
}

func (f *fakeNewsService) Status(context.Context, string) models.NewsStatus {
	return models.NewsStatus{NewsAPI: true, Keys: models.KeyMap{models.ProviderNewsAPI: "abcd****"}}
}

func newNewsServer(svc *fakeNewsService) *echo.Echo {
	e := echo.New()
	NewNewsEchoHandler(svc, nil).RegisterRoutes(e)
	return e
}

func TestNewsAllDefaultsLimit(t *testing.T) {
	svc := &fakeNewsService{}
	e := newNewsServer(svc)

	code, env := get(t, e, "/api/news?userId=u1")
	if code != http.StatusOK || env.Count != 1 || svc.limit != 20 {
		t.Fatalf("unexpected answer %d %+v limit=%d", code, env, svc.limit)
	}
	if code, _ := get(t, e, "/news?limit=500"); code != http.StatusBadRequest {
		t.Fatalf("limit over bound: expected 400, got %d", code)
	}
}

func TestNewsCategory(t *testing.T) {
	svc := &fakeNewsService{}
	e := newNewsServer(svc)

	if code, _ := get(t, e, "/news/category/Crypto"); code != http.StatusOK || svc.cat != models.NewsCrypto {
		t.Fatalf("unexpected answer %d cat=%s", code, svc.cat)
	}
	code, env := get(t, e, "/news/category/sports")
	if code != http.StatusBadRequest || len(env.Errors) != 1 || env.Errors[0].Field != "category" {
		t.Fatalf("expected category 400, got %d %+v", code, env)
	}
}

func TestNewsSearchRequiresQuery(t *testing.T) {
	svc := &fakeNewsService{}
	e := newNewsServer(svc)

	if code, _ := get(t, e, "/news/search"); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	code, env := get(t, e, "/news/search?q=fed")
	if code != http.StatusOK || svc.query != "fed" || string(env.Data) != "[]" {
		t.Fatalf("unexpected answer %d %+v", code, env)
	}
}

func TestNewsTickerAndStatus(t *testing.T) {
	svc := &fakeNewsService{}
	e := newNewsServer(svc)

	if code, _ := get(t, e, "/news/ticker/aapl"); code != http.StatusOK || svc.ticker != "AAPL" {
		t.Fatalf("unexpected ticker answer %d %q", code, svc.ticker)
	}
	code, env := get(t, e, "/news/status?userId=u1")
	if code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected status answer %d", code)
	}
}

func TestNewsServiceError(t *testing.T) {
	e := newNewsServer(&fakeNewsService{err: context.Canceled})
	code, env := get(t, e, "/news")
	if code != http.StatusInternalServerError || env.Success {
		t.Fatalf("expected 500, got %d", code)
	}
}

func TestNewsUpstreamTimeout(t *testing.T) {
	e := newNewsServer(&fakeNewsService{err: context.DeadlineExceeded})
	code, env := get(t, e, "/api/news/search?q=fed")
	if code != http.StatusGatewayTimeout || env.Success {
		t.Fatalf("expected 504, got %d", code)
	}
}
