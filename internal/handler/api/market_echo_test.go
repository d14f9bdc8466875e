package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/ratelimit"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/classifier"

	"github.com/labstack/echo/v4"
)

type fakeMarket struct {
	userID  string
	symbols []string
}

func (f *fakeMarket) Aggregate(_ context.Context, userID string, symbols []string) models.AggregationResult {
	f.userID, f.symbols = userID, symbols
	quotes := make([]models.Quote, 0, len(symbols))
	for _, s := range symbols {
		quotes = append(quotes, models.Quote{Symbol: s, Price: 10, Source: models.SourceDemo, Timestamp: time.Now()})
	}
	return models.AggregationResult{Quotes: quotes, Alerts: []models.Alert{}}
}

func (f *fakeMarket) Alerts(ctx context.Context, userID string, symbols []string) []models.Alert {
	f.userID, f.symbols = userID, symbols
	return []models.Alert{{ID: "a1", Symbol: symbols[0], Severity: models.SeverityHigh}}
}

func (f *fakeMarket) Classify(symbol string) models.SymbolInfo {
	c := classifier.Classify(symbol)
	return models.SymbolInfo{Mapping: c, Recommendation: classifier.Recommendation(c)}
}

func (f *fakeMarket) CryptoSnapshot(_ context.Context, symbols []string) models.AggregationResult {
	f.symbols = symbols
	return models.AggregationResult{Quotes: []models.Quote{}, Alerts: []models.Alert{}}
}

func (f *fakeMarket) AlertCap() int            { return 15 }
func (f *fakeMarket) SingleFetchAlertCap() int { return 10 }

type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Message  string          `json:"message"`
	AlertCap int             `json:"alertCap"`
	Count    int             `json:"count"`
	Errors   []struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"errors"`
}

func newMarketServer(t *testing.T, svc *fakeMarket, limiter *ratelimit.Limiter) *echo.Echo {
	t.Helper()
	e := echo.New()
	NewMarketEchoHandler(svc, limiter, nil).RegisterRoutes(e)
	return e
}

func get(t *testing.T, e *echo.Echo, target string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v (%s)", target, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestPortfolioData(t *testing.T) {
	svc := &fakeMarket{}
	e := newMarketServer(t, svc, nil)

	for _, path := range []string{"/market/portfolio-data", "/api/market/portfolio-data"} {
		code, env := get(t, e, path+"?userId=u1&symbols=btc,%20GOOGL,btc")
		if code != http.StatusOK || !env.Success || env.AlertCap != 15 {
			t.Fatalf("%s: unexpected answer %d %+v", path, code, env)
		}
		if svc.userID != "u1" || len(svc.symbols) != 2 || svc.symbols[0] != "BTC" || svc.symbols[1] != "GOOGL" {
			t.Fatalf("%s: service got %q %v", path, svc.userID, svc.symbols)
		}
		var res models.AggregationResult
		if err := json.Unmarshal(env.Data, &res); err != nil || len(res.Quotes) != 2 {
			t.Fatalf("%s: unexpected data %s", path, env.Data)
		}
	}
}

func TestPortfolioDataValidation(t *testing.T) {
	e := newMarketServer(t, &fakeMarket{}, nil)

	code, env := get(t, e, "/market/portfolio-data?userId=u1")
	if code != http.StatusBadRequest || env.Success {
		t.Fatalf("expected 400, got %d %+v", code, env)
	}
	if len(env.Errors) == 0 || env.Errors[0].Field != "symbols" {
		t.Fatalf("expected symbols error, got %+v", env.Errors)
	}

	code, _ = get(t, e, "/market/portfolio-data?symbols=,,")
	if code != http.StatusBadRequest {
		t.Fatalf("empty symbol list: expected 400, got %d", code)
	}
}

func TestAlertsEndpoint(t *testing.T) {
	e := newMarketServer(t, &fakeMarket{}, nil)
	code, env := get(t, e, "/api/market/alerts?symbols=AAPL")
	if code != http.StatusOK || env.AlertCap != 15 || env.Count != 1 {
		t.Fatalf("unexpected answer %d %+v", code, env)
	}
}

func TestSymbolEndpoint(t *testing.T) {
	e := newMarketServer(t, &fakeMarket{}, nil)
	code, env := get(t, e, "/market/symbol/fpt")
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	var info models.SymbolInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Mapping.Market != classifier.MarketVietnamStock || info.Mapping.APISymbol != "FPT.VN" {
		t.Fatalf("unexpected mapping %+v", info)
	}
}

func TestBinanceDataCap(t *testing.T) {
	svc := &fakeMarket{}
	e := newMarketServer(t, svc, nil)
	code, env := get(t, e, "/market/binance-data?symbols=BTC,ETH")
	if code != http.StatusOK || env.AlertCap != 10 || len(svc.symbols) != 2 {
		t.Fatalf("unexpected answer %d %+v", code, env)
	}
}

func TestMarketRateLimit(t *testing.T) {
	e := newMarketServer(t, &fakeMarket{}, ratelimit.New(1, 0.001))
	if code, _ := get(t, e, "/market/alerts?userId=u9&symbols=AAPL"); code != http.StatusOK {
		t.Fatalf("first call: %d", code)
	}
	if code, env := get(t, e, "/market/alerts?userId=u9&symbols=AAPL"); code != http.StatusTooManyRequests || env.Success {
		t.Fatalf("second call: expected 429, got %d", code)
	}
}
