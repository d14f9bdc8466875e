package yahoo

import (
	"context"
	"errors"
	"testing"

	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"

	"github.com/piquette/finance-go"
)

func TestFetchUsesRegionalSymbols(t *testing.T) {
	var asked []string
	c := New(config.ProviderConfig{Enabled: true, MaxSymbols: 5}, nil)
	c.get = func(sym string) (*finance.Quote, error) {
		asked = append(asked, sym)
		switch sym {
		case "FPT.VN":
			return &finance.Quote{RegularMarketPrice: 120000, RegularMarketChange: 1500, RegularMarketChangePercent: 1.26, RegularMarketTime: 1717430400}, nil
		case "AAPL":
			return &finance.Quote{RegularMarketPrice: 190}, nil
		}
		return nil, errors.New("not found")
	}

	quotes, err := c.Fetch(context.Background(), []string{"FPT", "AAPL", "ZZZZ"}, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(asked) != 3 || asked[0] != "FPT.VN" || asked[1] != "AAPL" {
		t.Fatalf("unexpected api symbols %v", asked)
	}
	if len(quotes) != 2 || quotes[0].Symbol != "FPT" || quotes[0].Source != "Yahoo Finance" {
		t.Fatalf("unexpected quotes %+v", quotes)
	}
	if quotes[0].Timestamp.Unix() != 1717430400 {
		t.Fatalf("unexpected timestamp %v", quotes[0].Timestamp)
	}
}

func TestFetchDisabled(t *testing.T) {
	c := New(config.ProviderConfig{}, nil)
	c.get = func(string) (*finance.Quote, error) {
		t.Fatal("disabled adapter must not call upstream")
		return nil, nil
	}
	if quotes, err := c.Fetch(context.Background(), []string{"AAPL"}, ""); quotes != nil || err != nil {
		t.Fatalf("expected no-op, got %v %v", quotes, err)
	}
}

func TestAPISymbol(t *testing.T) {
	for in, want := range map[string]string{"EUR/USD": "EURUSD=X", "VCB": "VCB.VN", "MSFT": "MSFT"} {
		if got := apiSymbol(in); got != want {
			t.Errorf("apiSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
