package secrets

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgsecrets "github.com/tf-anguskong/homelab-monitor/pkg/secrets"
)

// Resolver resolves vendor credentials from AWS Secrets Manager, caching
// results locally to reduce API calls. It is generic over the resolved
// credential type T so the same core logic serves both vendors.
//
// Unlike a multi-tenant service this repo has exactly one operator, so
// secrets are addressed by an explicit name from configuration
// (PLAID_SECRET_NAME / SCHWAB_SECRET_NAME) rather than a naming convention.
type Resolver[T any] struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[T]
}

// NewResolver constructs a cached credential resolver.
func NewResolver[T any](
	logger *zap.Logger,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[T],
) *Resolver[T] {
	return &Resolver[T]{
		logger:   logger,
		provider: provider,
		cache:    cache,
	}
}

// Resolve fetches or caches credentials T stored under secretName.
// parse extracts T from the raw secret map; it should validate required fields.
func (r *Resolver[T]) Resolve(ctx context.Context, secretName string, parse func(map[string]string) (T, error)) (T, error) {
	if creds, ok := r.cache.Get(secretName); ok {
		return creds, nil
	}

	secretMap, err := r.provider.GetSecret(ctx, secretName)
	if err != nil {
		r.logger.Warn("aws.secret_fetch_failed",
			zap.String("key", secretName),
			zap.Error(err))
		var zero T
		return zero, fmt.Errorf("resolve credentials %q: %w", secretName, err)
	}

	creds, err := parse(secretMap)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("parse secret %q: %w", secretName, err)
	}

	r.cache.Put(secretName, creds)

	r.logger.Info("aws.credentials_resolved",
		zap.String("secret", secretName),
	)
	return creds, nil
}
