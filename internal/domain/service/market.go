package service

import (
	"context"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
)

// MarketService aggregates quotes and alerts for a symbol set.
type MarketService interface {
	Aggregate(ctx context.Context, userID string, symbols []string) models.AggregationResult
	Alerts(ctx context.Context, userID string, symbols []string) []models.Alert
	Classify(symbol string) models.SymbolInfo
	CryptoSnapshot(ctx context.Context, symbols []string) models.AggregationResult
}

// NewsService serves the news endpoints. Errors are reserved for a
// cancelled request.
type NewsService interface {
	All(ctx context.Context, userID string, limit int) ([]models.NewsArticle, error)
	ByCategory(ctx context.Context, userID string, cat models.NewsCategory, limit int) ([]models.NewsArticle, error)
	Search(ctx context.Context, userID, query string, limit int) ([]models.NewsArticle, error)
	ForTicker(ctx context.Context, userID, ticker string, limit int) ([]models.NewsArticle, error)
	Status(ctx context.Context, userID string) models.NewsStatus
}

// CredentialResolver never fails; lookup problems degrade to process defaults.
type CredentialResolver interface {
	ForMarket(ctx context.Context, userID string) models.Credentials
	ForNews(ctx context.Context, userID string) models.Credentials
}
