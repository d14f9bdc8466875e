package util

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitList(t *testing.T) {
	got := SplitList(" btc, googl,,BTC , eth ", strings.ToUpper)
	want := []string{"BTC", "GOOGL", "ETH"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := SplitList("", nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestParseFloat(t *testing.T) {
	cases := map[string]struct {
		v  float64
		ok bool
	}{
		"1.25":     {1.25, true},
		"-0.4837%": {-0.4837, true},
		"":         {0, false},
		"n/a":      {0, false},
	}
	for in, tc := range cases {
		v, ok := ParseFloat(in)
		if ok != tc.ok || v != tc.v {
			t.Errorf("ParseFloat(%q) = %v,%v want %v,%v", in, v, ok, tc.v, tc.ok)
		}
	}
}
