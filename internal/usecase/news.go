package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/repository"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/service"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/fanout"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
)

type NewsConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	Limit    int
}

// NewsAggregator fans out to every news provider the caller has a key for.
type NewsAggregator struct {
	creds     service.CredentialResolver
	providers []repository.NewsProvider
	cache     repository.BytesCache
	metrics   repository.Metrics
	log       *applogger.Logger
	cfg       NewsConfig
}

var _ service.NewsService = (*NewsAggregator)(nil)

// NewNewsAggregator accepts a nil cache.
func NewNewsAggregator(creds service.CredentialResolver, providers []repository.NewsProvider, cache repository.BytesCache, m repository.Metrics, l *applogger.Logger, cfg NewsConfig) *NewsAggregator {
	if m == nil {
		m = repository.NopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	return &NewsAggregator{creds: creds, providers: providers, cache: cache, metrics: m, log: l, cfg: cfg}
}

func (n *NewsAggregator) All(ctx context.Context, userID string, limit int) ([]models.NewsArticle, error) {
	limit = n.limit(limit)
	creds := n.credentials(ctx, userID)

	key := n.cacheKey("all", creds, strconv.Itoa(limit))
	if cached, ok := n.fromCache(ctx, key); ok {
		return cached, nil
	}

	var tasks []fanout.Task[[]models.NewsArticle]
	for _, p := range n.providers {
		cred := creds.Get(p.Name())
		if cred == "" {
			continue
		}
		tasks = append(tasks, fanout.Task[[]models.NewsArticle]{
			Name: string(p.Name()),
			Run: func(ctx context.Context) ([]models.NewsArticle, error) {
				return p.Latest(ctx, cred, limit)
			},
		})
	}

	articles, err := n.collect(ctx, tasks, limit)
	if err != nil {
		return nil, err
	}
	n.toCache(ctx, key, articles)
	return articles, nil
}

// ByCategory filters the combined feed.
func (n *NewsAggregator) ByCategory(ctx context.Context, userID string, cat models.NewsCategory, limit int) ([]models.NewsArticle, error) {
	limit = n.limit(limit)
	all, err := n.All(ctx, userID, limit*2)
	if err != nil {
		return nil, err
	}
	out := make([]models.NewsArticle, 0, len(all))
	for _, a := range all {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return truncate(out, limit), nil
}

func (n *NewsAggregator) Search(ctx context.Context, userID, query string, limit int) ([]models.NewsArticle, error) {
	limit = n.limit(limit)
	query = strings.TrimSpace(query)
	creds := n.credentials(ctx, userID)

	var tasks []fanout.Task[[]models.NewsArticle]
	for _, p := range n.providers {
		s, ok := p.(repository.NewsSearcher)
		cred := creds.Get(p.Name())
		if !ok || cred == "" {
			continue
		}
		tasks = append(tasks, fanout.Task[[]models.NewsArticle]{
			Name: string(p.Name()),
			Run: func(ctx context.Context) ([]models.NewsArticle, error) {
				return s.Search(ctx, cred, query, limit)
			},
		})
	}
	return n.collect(ctx, tasks, limit)
}

func (n *NewsAggregator) ForTicker(ctx context.Context, userID, ticker string, limit int) ([]models.NewsArticle, error) {
	limit = n.limit(limit)
	ticker = models.NormalizeSymbol(ticker)
	creds := n.credentials(ctx, userID)

	var tasks []fanout.Task[[]models.NewsArticle]
	for _, p := range n.providers {
		tn, ok := p.(repository.TickerNews)
		cred := creds.Get(p.Name())
		if !ok || cred == "" {
			continue
		}
		tasks = append(tasks, fanout.Task[[]models.NewsArticle]{
			Name: string(p.Name()),
			Run: func(ctx context.Context) ([]models.NewsArticle, error) {
				return tn.ForTicker(ctx, cred, ticker, limit)
			},
		})
	}
	return n.collect(ctx, tasks, limit)
}

// Status reports which news providers have a key, with masked keys.
func (n *NewsAggregator) Status(ctx context.Context, userID string) models.NewsStatus {
	creds := n.credentials(ctx, userID)
	masked := models.Credentials{}
	for _, p := range []models.ProviderName{models.ProviderAlphaVantage, models.ProviderNewsAPI, models.ProviderPolygon} {
		if v := creds.Get(p); v != "" {
			masked[p] = v
		}
	}
	return models.NewsStatus{
		AlphaVantage: creds.Has(models.ProviderAlphaVantage),
		NewsAPI:      creds.Has(models.ProviderNewsAPI),
		Polygon:      creds.Has(models.ProviderPolygon),
		Keys:         masked.Mask(),
	}
}

func (n *NewsAggregator) collect(ctx context.Context, tasks []fanout.Task[[]models.NewsArticle], limit int) ([]models.NewsArticle, error) {
	results := fanout.All(ctx, n.cfg.Timeout, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []models.NewsArticle
	for _, r := range results {
		if !r.OK() {
			n.log.Warn("news provider failed",
				applogger.String("provider", r.Name),
				applogger.Duration("elapsed", r.Elapsed),
				applogger.Error(r.Err))
			continue
		}
		all = append(all, r.Value...)
	}
	return truncate(Dedup(all), limit), nil
}

// Dedup drops articles whose normalized title was already seen and sorts the
// rest newest first. Ties keep provider order.
func Dedup(articles []models.NewsArticle) []models.NewsArticle {
	out := make([]models.NewsArticle, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		k := strings.ToLower(strings.Join(strings.Fields(a.Title), " "))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func (n *NewsAggregator) credentials(ctx context.Context, userID string) models.Credentials {
	if n.creds == nil {
		return models.Credentials{}
	}
	return n.creds.ForNews(ctx, userID)
}

func (n *NewsAggregator) limit(l int) int {
	if l <= 0 {
		return n.cfg.Limit
	}
	return l
}

// cacheKey hashes the credential set so keys never appear in cache keys.
func (n *NewsAggregator) cacheKey(kind string, creds models.Credentials, extra string) string {
	h := sha256.New()
	for _, p := range []models.ProviderName{models.ProviderAlphaVantage, models.ProviderNewsAPI, models.ProviderPolygon} {
		h.Write([]byte(string(p) + "=" + creds.Get(p) + ";"))
	}
	return "news:" + kind + ":" + hex.EncodeToString(h.Sum(nil))[:16] + ":" + extra
}

func (n *NewsAggregator) fromCache(ctx context.Context, key string) ([]models.NewsArticle, bool) {
	if n.cache == nil {
		return nil, false
	}
	b, ok, err := n.cache.GetBytes(ctx, key)
	if err != nil {
		n.log.Warn("news cache read failed", applogger.Error(err))
		return nil, false
	}
	if !ok {
		n.metrics.RecordCache(false)
		return nil, false
	}
	var articles []models.NewsArticle
	if err := json.Unmarshal(b, &articles); err != nil {
		return nil, false
	}
	n.metrics.RecordCache(true)
	return articles, true
}

func (n *NewsAggregator) toCache(ctx context.Context, key string, articles []models.NewsArticle) {
	if n.cache == nil || n.cfg.CacheTTL <= 0 || len(articles) == 0 {
		return
	}
	b, err := json.Marshal(articles)
	if err != nil {
		return
	}
	if err := n.cache.SetBytes(ctx, key, b, n.cfg.CacheTTL); err != nil {
		n.log.Warn("news cache write failed", applogger.Error(err))
	}
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
