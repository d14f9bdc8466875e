package repository

import (
	"context"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

// QuoteProvider is the uniform adapter contract. A provider that needs a
// credential returns (nil, nil) when credential is empty. Malformed or
// rate-limited entries are dropped rather than failing the batch.
type QuoteProvider interface {
	Name() models.ProviderName
	Fetch(ctx context.Context, symbols []string, credential string) ([]models.Quote, error)
}

// CategoryAware is implemented by providers that only serve some markets.
type CategoryAware interface {
	Supports(c models.MarketCategory) bool
}

// NewsProvider fetches articles for the news endpoints and the news alert pass.
type NewsProvider interface {
	Name() models.ProviderName
	Latest(ctx context.Context, credential string, limit int) ([]models.NewsArticle, error)
}

// NewsSearcher is implemented by news providers with free text search.
type NewsSearcher interface {
	Search(ctx context.Context, credential, query string, limit int) ([]models.NewsArticle, error)
}

// TickerNews is implemented by news providers that filter by ticker.
type TickerNews interface {
	ForTicker(ctx context.Context, credential, ticker string, limit int) ([]models.NewsArticle, error)
}

// CredentialStore returns the per-user provider credentials configured in settings.
type CredentialStore interface {
	GetUserAPIKeys(ctx context.Context, userID string) (models.Credentials, error)
}

// BytesCache is a small byte cache with per-entry TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Metrics interface {
	RecordProviderCall(provider, outcome string, quotes int, elapsed time.Duration)
	RecordFallback(n int)
	RecordAlert(kind, severity string)
	RecordCache(hit bool)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordProviderCall(string, string, int, time.Duration) {}
func (NopMetrics) RecordFallback(int)                                   {}
func (NopMetrics) RecordAlert(string, string)                           {}
func (NopMetrics) RecordCache(bool)                                     {}
