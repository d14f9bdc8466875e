// Package classifier maps raw tickers to a market category and the provider
// preferred for that market. Everything here is pure and total.
package classifier

import (
	"regexp"
	"strings"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

const (
	MarketCrypto       = "crypto"
	MarketForex        = "forex"
	MarketVietnamStock = "vietnam_stock"
	MarketUSStock      = "us_stock"
)

var forexPair = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3}$`)

var cryptoTickers = set(
	"BTC", "ETH", "ADA", "DOT", "LINK", "UNI", "AAVE", "COMP",
	"SOL", "XRP", "DOGE", "BNB", "MATIC", "AVAX",
)

// quote currencies that make a pair crypto even when the base is unknown
var cryptoQuotes = set("USDT", "BTC", "ETH")

var vietnamStocks = set(
	"FPT", "VCB", "VIC", "VNM", "HPG", "MSN", "TCB", "BID", "CTG", "VJC",
	"GAS", "PLX", "POW", "NVL", "TPB", "MBB", "ACB", "STB", "HDB", "EIB",
	"SSI", "VND", "VRE", "PDR", "KDH", "DIG", "FLC", "PNJ", "MWG", "REE",
)

var coinGeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"AAVE":  "aave",
	"COMP":  "compound-governance-token",
	"SOL":   "solana",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"BNB":   "binancecoin",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
}

// Classify applies, in order: crypto list, forex pair pattern, regional
// equity list, then the generic equity default.
func Classify(symbol string) models.Classification {
	sym := models.NormalizeSymbol(symbol)

	if IsCrypto(sym) {
		return models.Classification{
			Symbol:            sym,
			Category:          models.CategoryCrypto,
			Market:            MarketCrypto,
			PreferredProvider: models.ProviderCoinGecko,
			APISymbol:         CoinGeckoID(sym),
			Currency:          "USD",
		}
	}

	if forexPair.MatchString(sym) {
		return models.Classification{
			Symbol:            sym,
			Category:          models.CategoryForex,
			Market:            MarketForex,
			PreferredProvider: models.ProviderAlphaVantage,
			APISymbol:         sym,
			Currency:          sym[4:],
		}
	}

	if _, ok := vietnamStocks[sym]; ok {
		return models.Classification{
			Symbol:            sym,
			Category:          models.CategoryEquity,
			Market:            MarketVietnamStock,
			PreferredProvider: models.ProviderYahoo,
			APISymbol:         sym + ".VN",
			Currency:          "VND",
			Exchange:          "HOSE",
		}
	}

	return models.Classification{
		Symbol:            sym,
		Category:          models.CategoryEquity,
		Market:            MarketUSStock,
		PreferredProvider: models.ProviderAlphaVantage,
		APISymbol:         sym,
		Currency:          "USD",
		Exchange:          "NASDAQ",
	}
}

// IsCrypto reports whether sym is a listed coin or a pair whose base is a
// listed coin or whose quote is a crypto quote currency.
func IsCrypto(sym string) bool {
	base, quote, pair := strings.Cut(sym, "/")
	if _, ok := cryptoTickers[base]; ok {
		return true
	}
	if pair {
		_, ok := cryptoQuotes[quote]
		return ok
	}
	return false
}

// Base returns the part of a pair before the slash.
func Base(sym string) string {
	base, _, _ := strings.Cut(sym, "/")
	return base
}

// CoinGeckoID returns the CoinGecko coin id for a crypto symbol or pair.
func CoinGeckoID(sym string) string {
	base := Base(models.NormalizeSymbol(sym))
	if id, ok := coinGeckoIDs[base]; ok {
		return id
	}
	return strings.ToLower(base)
}

// Recommendation is the human readable routing hint for a classification.
func Recommendation(c models.Classification) string {
	return "Use " + string(c.PreferredProvider) + " API for " + c.Symbol
}

// Partition splits symbols into crypto and everything else, keeping order.
func Partition(symbols []string) (crypto, other []models.Classification) {
	for _, s := range symbols {
		c := Classify(s)
		if c.Category == models.CategoryCrypto {
			crypto = append(crypto, c)
		} else {
			other = append(other, c)
		}
	}
	return crypto, other
}

// Group buckets classifications by preferred provider, keeping input order
// within each bucket.
func Group(cs []models.Classification) map[models.ProviderName][]models.Classification {
	out := make(map[models.ProviderName][]models.Classification)
	for _, c := range cs {
		out[c.PreferredProvider] = append(out[c.PreferredProvider], c)
	}
	return out
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
