// Package upstream holds what every provider adapter shares: the HTTP client,
// URL building, pacing between sequential calls and credential redaction.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	xhttp "github.com/cuongccna/tradingjournalai-sub000/pkg/http"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
)

// Base carries the configuration every adapter is built from.
type Base struct {
	Name       models.ProviderName
	BaseURL    string
	Delay      time.Duration
	MaxSymbols int
	Client     *xhttp.Client
	Log        *applogger.Logger
}

// NewBase builds the HTTP client with the per-provider timeout.
func NewBase(name models.ProviderName, cfg config.ProviderConfig, l *applogger.Logger) *Base {
	if l == nil {
		l = applogger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Base{
		Name:       name,
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		Delay:      cfg.Delay,
		MaxSymbols: cfg.MaxSymbols,
		Client:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		Log:        l.With(applogger.String("provider", string(name))),
	}
}

// GetJSON issues a GET under BaseURL and decodes JSON (or raw bytes into *[]byte).
// Any secret appears masked in the returned error.
func (b *Base) GetJSON(ctx context.Context, path string, query map[string][]string, headers map[string]string, dest interface{}, secrets ...string) error {
	err := b.Client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.BaseURL + path,
		Headers:     headers,
		QueryParams: query,
	}, dest)
	if err != nil {
		return Redact(fmt.Errorf("%s get %s: %w", b.Name, path, err), secrets...)
	}
	return nil
}

// GetJSONWithRetry retries transient failures up to attempts times. Rate
// limit answers are not retried.
func (b *Base) GetJSONWithRetry(ctx context.Context, path string, query map[string][]string, dest interface{}, attempts int, secrets ...string) error {
	if attempts <= 1 {
		return b.GetJSON(ctx, path, query, nil, dest, secrets...)
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.GetJSON(ctx, path, query, nil, dest, secrets...)
		if err == nil || IsRateLimited(err) || ctx.Err() != nil {
			return err
		}
		select {
		case <-time.After(time.Duration(i) * 200 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Limit truncates symbols to MaxSymbols (0 means unbounded).
func (b *Base) Limit(symbols []string) []string {
	if b.MaxSymbols > 0 && len(symbols) > b.MaxSymbols {
		return symbols[:b.MaxSymbols]
	}
	return symbols
}

// SymbolFetch retrieves one symbol. ok=false drops the symbol without error
// (missing data, malformed payload, rate limit note).
type SymbolFetch func(ctx context.Context, symbol string) (q models.Quote, ok bool, err error)

// Sequential walks symbols one call at a time, pacing calls by Delay. A
// per-symbol error only drops that symbol. It returns an error when the
// context ends early or when every attempted call failed.
func (b *Base) Sequential(ctx context.Context, symbols []string, fetch SymbolFetch) ([]models.Quote, error) {
	pacer := NewPacer(b.Delay)
	quotes := make([]models.Quote, 0, len(symbols))
	var errs []error

	for _, sym := range symbols {
		if err := pacer.Wait(ctx); err != nil {
			return quotes, err
		}
		q, ok, err := fetch(ctx, sym)
		if err != nil {
			if ctx.Err() != nil {
				return quotes, ctx.Err()
			}
			b.Log.Debug("symbol fetch failed", applogger.String("symbol", sym), applogger.Error(err))
			errs = append(errs, err)
			continue
		}
		if !ok || !q.Valid() {
			b.Log.Debug("symbol dropped", applogger.String("symbol", sym))
			continue
		}
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 && len(errs) == len(symbols) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return quotes, nil
}

// IsRateLimited reports whether err carries an HTTP 429 from upstream.
func IsRateLimited(err error) bool {
	var se *xhttp.StatusError
	return errors.As(err, &se) && se.RateLimited()
}
