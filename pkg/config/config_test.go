package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseFillsDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("port = %d", c.Server.Port)
	}
	if c.Aggregator.TaskTimeout != 45*time.Second {
		t.Errorf("task timeout = %v", c.Aggregator.TaskTimeout)
	}
	if c.Aggregator.PortfolioAlertCap != 15 || c.Aggregator.SingleFetchAlertCap != 10 {
		t.Errorf("alert caps = %d/%d", c.Aggregator.PortfolioAlertCap, c.Aggregator.SingleFetchAlertCap)
	}
	if c.Providers.AlphaVantage.MaxSymbols != 3 || c.Providers.AlphaVantage.Delay != 12*time.Second {
		t.Errorf("alpha vantage = %+v", c.Providers.AlphaVantage)
	}
	if c.Providers.Polygon.MaxSymbols != 2 {
		t.Errorf("polygon max symbols = %d", c.Providers.Polygon.MaxSymbols)
	}
	if c.News.Cache != "memory" || c.News.Limit != 20 {
		t.Errorf("news = %+v", c.News)
	}
	if c.Credentials.Store != "static" {
		t.Errorf("store = %q", c.Credentials.Store)
	}
}

func TestParseTrimsBaseURL(t *testing.T) {
	c, err := Parse([]byte("environment: test\nproviders:\n  binance:\n    base_url: http://localhost:9000/\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Providers.Binance.BaseURL != "http://localhost:9000" {
		t.Errorf("base url = %q", c.Providers.Binance.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"missing environment": "server:\n  port: 1\n",
		"bad store":           "environment: t\ncredentials:\n  store: vault\n",
		"redis without addr":  "environment: t\ncredentials:\n  store: redis\n",
		"bad cache":           "environment: t\nnews:\n  cache: disk\n",
		"collector no broker": "environment: t\nlogging:\n  collector:\n    enabled: true\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := "environment: dev\ncredentials:\n  defaults:\n    polygon: from-file\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("MARKET_PORT", "9090")
	t.Setenv("MARKET_ALPHA_VANTAGE_API_KEY", "av-env")
	t.Setenv("MARKET_KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Errorf("port = %d", c.Server.Port)
	}
	if c.Credentials.Defaults["alpha_vantage"] != "av-env" {
		t.Errorf("alpha_vantage = %q", c.Credentials.Defaults["alpha_vantage"])
	}
	if c.Credentials.Defaults["polygon"] != "from-file" {
		t.Errorf("polygon = %q", c.Credentials.Defaults["polygon"])
	}
	if got := strings.Join(c.Kafka.Brokers, ","); got != "k1:9092,k2:9092" {
		t.Errorf("brokers = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
