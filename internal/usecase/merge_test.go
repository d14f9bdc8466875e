package usecase

import (
	"testing"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

func TestMergeFirstOccurrenceWins(t *testing.T) {
	in := []models.Quote{
		{Symbol: "AAPL", Price: 1, Source: "Alpha Vantage"},
		{Symbol: "BTC", Price: 2, Source: "CoinGecko"},
		{Symbol: "AAPL", Price: 3, Source: "Polygon.io"},
		{Symbol: "BTC", Price: 4, Source: "Demo Data"},
	}
	out := Merge(in)
	if len(out) != 2 {
		t.Fatalf("expected two quotes, got %+v", out)
	}
	if out[0].Source != "Alpha Vantage" || out[1].Source != "CoinGecko" {
		t.Fatalf("unexpected merge %+v", out)
	}
	if len(in) != 4 {
		t.Fatalf("input must not be modified")
	}
}

func TestMergeEmpty(t *testing.T) {
	if out := Merge(nil); out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
}

func TestMissingKeepsRequestOrder(t *testing.T) {
	got := missing([]string{"A", "B", "C", "D"}, []models.Quote{{Symbol: "C"}, {Symbol: "A"}})
	if len(got) != 2 || got[0] != "B" || got[1] != "D" {
		t.Fatalf("unexpected missing %v", got)
	}
}
