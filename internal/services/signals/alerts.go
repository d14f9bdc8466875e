// Package signals derives alerts and the market overview from merged quotes.
package signals

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"

	"github.com/google/uuid"
)

// Thresholds in percent. All comparisons are strict.
const (
	VolatilityMedium = 5.0
	VolatilityHigh   = 10.0
	MomentumLimit    = 8.0
	VolumeSpike      = 1_000_000
)

func newID(kind, symbol string) string {
	return kind + "_" + symbol + "_" + uuid.NewString()
}

// Generate runs the independent threshold checks over every quote. A quote can
// produce zero, one or several alerts; output order follows input order.
func Generate(quotes []models.Quote, now time.Time) []models.Alert {
	alerts := make([]models.Alert, 0)
	for _, q := range quotes {
		alerts = append(alerts, forQuote(q, now)...)
	}
	return alerts
}

func forQuote(q models.Quote, now time.Time) []models.Alert {
	var out []models.Alert
	cp := q.ChangePercent
	abs := math.Abs(cp)

	if abs > VolatilityMedium {
		sev := models.SeverityMedium
		if abs > VolatilityHigh {
			sev = models.SeverityHigh
		}
		impact, rec := models.ImpactNegative, "Watch support levels and review stop losses"
		if cp > 0 {
			impact, rec = models.ImpactPositive, "Consider taking partial profits"
		}
		out = append(out, models.Alert{
			ID:             newID("volatility", q.Symbol),
			Type:           models.AlertHighVolatility,
			Symbol:         q.Symbol,
			Title:          fmt.Sprintf("High volatility - %s", q.Symbol),
			Description:    fmt.Sprintf("%s moved %.2f%% (source: %s)", q.Symbol, cp, q.Source),
			Severity:       sev,
			Timestamp:      now,
			Impact:         impact,
			Recommendation: rec,
		})
	}

	if q.Volume > VolumeSpike {
		out = append(out, models.Alert{
			ID:             newID("volume", q.Symbol),
			Type:           models.AlertVolumeSpike,
			Symbol:         q.Symbol,
			Title:          fmt.Sprintf("Unusual volume - %s", q.Symbol),
			Description:    fmt.Sprintf("Traded volume %.1fM, above normal", q.Volume/1_000_000),
			Severity:       models.SeverityMedium,
			Timestamp:      now,
			Impact:         models.ImpactNeutral,
			Recommendation: "Watch for a confirmed breakout or breakdown",
		})
	}

	switch {
	case cp > MomentumLimit:
		out = append(out, models.Alert{
			ID:             newID("momentum", q.Symbol),
			Type:           models.AlertPriceTarget,
			Symbol:         q.Symbol,
			Title:          fmt.Sprintf("Strong breakout - %s", q.Symbol),
			Description:    fmt.Sprintf("Up %.2f%% in the session, resistance likely", cp),
			Severity:       models.SeverityHigh,
			Timestamp:      now,
			Impact:         models.ImpactPositive,
			Recommendation: "Consider partial profit taking and a trailing stop",
		})
	case cp < -MomentumLimit:
		out = append(out, models.Alert{
			ID:             newID("decline", q.Symbol),
			Type:           models.AlertPriceTarget,
			Symbol:         q.Symbol,
			Title:          fmt.Sprintf("Sharp decline - %s", q.Symbol),
			Description:    fmt.Sprintf("Down %.2f%% in the session", abs),
			Severity:       models.SeverityHigh,
			Timestamp:      now,
			Impact:         models.ImpactNegative,
			Recommendation: "Review the position against your stop loss",
		})
	}

	return out
}

// NewsAlerts emits one news_impact alert per article that mentions a requested
// symbol in its title or summary, case-insensitively. The first matching
// symbol in request order wins.
func NewsAlerts(articles []models.NewsArticle, symbols []string, now time.Time) []models.Alert {
	alerts := make([]models.Alert, 0)
	for _, a := range articles {
		title := strings.ToUpper(a.Title)
		summary := strings.ToUpper(a.Summary)

		for _, s := range symbols {
			sym := strings.ToUpper(s)
			if sym == "" || !(strings.Contains(title, sym) || strings.Contains(summary, sym)) {
				continue
			}
			ts := a.PublishedAt
			if ts.IsZero() {
				ts = now
			}
			alerts = append(alerts, models.Alert{
				ID:             newID("news", sym),
				Type:           models.AlertNewsImpact,
				Symbol:         sym,
				Title:          fmt.Sprintf("News about %s", sym),
				Description:    a.Title,
				Severity:       models.SeverityMedium,
				Timestamp:      ts,
				Impact:         models.ImpactNeutral,
				Recommendation: fmt.Sprintf("New article from %s. Read it to judge the impact.", a.Source),
			})
			break
		}
	}
	return alerts
}

// DemoAlert is the single low-severity notice attached to a synthetic quote.
func DemoAlert(symbol string, now time.Time) models.Alert {
	return models.Alert{
		ID:             newID("demo", symbol),
		Type:           models.AlertHighVolatility,
		Symbol:         symbol,
		Title:          fmt.Sprintf("Demo data for %s", symbol),
		Description:    "No live provider answered for this symbol. Configure API keys to receive real data.",
		Severity:       models.SeverityLow,
		Timestamp:      now,
		Impact:         models.ImpactNeutral,
		Recommendation: "Go to Settings > API to configure provider keys",
	}
}
