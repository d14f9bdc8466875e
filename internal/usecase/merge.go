package usecase

import "github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"

// Merge keeps the first quote seen for each symbol. Callers pass quotes in
// provider priority order, so the result does not depend on which provider
// answered first.
func Merge(quotes []models.Quote) []models.Quote {
	out := make([]models.Quote, 0, len(quotes))
	seen := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		if _, dup := seen[q.Symbol]; dup {
			continue
		}
		seen[q.Symbol] = struct{}{}
		out = append(out, q)
	}
	return out
}

// missing returns the requested symbols that have no quote, in request order.
func missing(requested []string, quotes []models.Quote) []string {
	have := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		have[q.Symbol] = struct{}{}
	}
	var out []string
	for _, s := range requested {
		if _, ok := have[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
