package signals

import (
	"sort"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

const (
	// PortfolioAlertCap bounds the combined portfolio view.
	PortfolioAlertCap = 15
	// SingleFetchAlertCap bounds single-source views such as the crypto snapshot.
	SingleFetchAlertCap = 10
)

// Prioritize stable-sorts by severity, high first, and keeps at most limit
// alerts. The input slice is not modified. limit <= 0 means no truncation.
func Prioritize(alerts []models.Alert, limit int) []models.Alert {
	out := make([]models.Alert, len(alerts))
	copy(out, alerts)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
