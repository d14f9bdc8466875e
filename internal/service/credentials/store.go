// Package credentials resolves per-user provider API keys from the settings
// store, falling back to the process defaults.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

var ErrUserNotFound = errors.New("credentials: user not found")

// aliases accepted in stored settings besides the provider names themselves
var aliases = map[string]models.ProviderName{
	"alphavantage":  models.ProviderAlphaVantage,
	"alpha_vantage": models.ProviderAlphaVantage,
	"polygon":       models.ProviderPolygon,
	"polygon_io":    models.ProviderPolygon,
	"finnhub":       models.ProviderFinnhub,
	"alpaca":        models.ProviderAlpaca,
	"newsapi":       models.ProviderNewsAPI,
	"news_api":      models.ProviderNewsAPI,
	"yahoo_finance": models.ProviderYahoo,
	"coingecko":     models.ProviderCoinGecko,
	"binance":       models.ProviderBinance,
}

// FromMap converts loosely named settings into Credentials. Unknown names and
// empty values are dropped.
func FromMap(m map[string]string) models.Credentials {
	out := make(models.Credentials, len(m))
	for k, v := range m {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if p, ok := aliases[strings.ToLower(strings.TrimSpace(k))]; ok {
			out[p] = v
		}
	}
	return out
}

// StaticStore serves credentials from configuration.
type StaticStore struct {
	users map[string]models.Credentials
}

func NewStaticStore(users map[string]map[string]string) *StaticStore {
	s := &StaticStore{users: make(map[string]models.Credentials, len(users))}
	for id, m := range users {
		s.users[id] = FromMap(m)
	}
	return s
}

func (s *StaticStore) GetUserAPIKeys(_ context.Context, userID string) (models.Credentials, error) {
	c, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return models.Credentials{}.Overlay(c), nil
}

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisStore reads the hash <prefix>:users:<id>:apikeys.
type RedisStore struct {
	cli    hashReader
	prefix string
}

func NewRedisStore(cli redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{cli: cli, prefix: prefix}
}

func (s *RedisStore) key(userID string) string {
	k := "users:" + userID + ":apikeys"
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisStore) GetUserAPIKeys(ctx context.Context, userID string) (models.Credentials, error) {
	m, err := s.cli.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(m) == 0 {
		return nil, ErrUserNotFound
	}
	return FromMap(m), nil
}
