package credentials

import (
	"context"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/repository"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
)

// Resolver never fails: store errors degrade to the process defaults.
type Resolver struct {
	store    repository.CredentialStore
	defaults models.Credentials
	timeout  time.Duration
	log      *applogger.Logger
}

func NewResolver(store repository.CredentialStore, defaults models.Credentials, timeout time.Duration, l *applogger.Logger) *Resolver {
	if l == nil {
		l = applogger.Nop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Resolver{store: store, defaults: defaults, timeout: timeout, log: l}
}

// Defaults returns a copy of the process credentials.
func (r *Resolver) Defaults() models.Credentials {
	return models.Credentials{}.Overlay(r.defaults)
}

// ForMarket returns the user's own keys when the lookup succeeds with at
// least one key, and the process defaults otherwise.
func (r *Resolver) ForMarket(ctx context.Context, userID string) models.Credentials {
	user, ok := r.lookup(ctx, userID)
	if !ok || len(user) == 0 {
		return r.Defaults()
	}
	return user
}

// ForNews overlays the user's keys on the process defaults per provider.
func (r *Resolver) ForNews(ctx context.Context, userID string) models.Credentials {
	user, _ := r.lookup(ctx, userID)
	return r.defaults.Overlay(user)
}

func (r *Resolver) lookup(ctx context.Context, userID string) (models.Credentials, bool) {
	if userID == "" || r.store == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	creds, err := r.store.GetUserAPIKeys(ctx, userID)
	if err != nil {
		r.log.Warn("credential lookup failed, using defaults",
			applogger.String("user_id", userID), applogger.Error(err))
		return nil, false
	}
	return creds, true
}
