package tenant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// Service orchestrates per-request tenant resolution: identifier
// extraction, cache lookup, fetch on miss, and cache population.
//
// Resolve never returns an error and never lets a panic escape; every
// failure path is normalized to a nil tenant so the merge stage owns the
// not-found disposition.
type Service struct {
	resolver Resolver
	provider Provider
	cache    Cache
	lister   Lister
	preload  bool
	logger   *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewService composes a resolver, provider and cache into the per-request
// resolution operation.
func NewService(resolver Resolver, provider Provider, opts ...ServiceOption) *Service {
	s := &Service{
		resolver: resolver,
		provider: provider,
		cache:    NewMemoryCache(CacheConfig{Mode: CacheModeLazy, TTL: defaultCacheTTL}),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start warms the cache when preloading is enabled. A failed bulk load is
// logged and swallowed: the cache simply stays cold and per-request
// lookups miss. Idempotent.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		if !s.preload || s.lister == nil {
			return
		}

		records, err := s.lister.All(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "tenant cache preload failed", slog.Any("error", err))
			return
		}
		for _, t := range records {
			if t == nil {
				continue
			}
			s.cache.Set(ctx, t.CacheKey(), t)
		}
		s.logger.InfoContext(ctx, "tenant cache preloaded", slog.Int("tenants", len(records)))
	})
}

// Stop releases the cache and its background sweeper. Idempotent.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("tenant cache close failed", slog.Any("error", err))
		}
	})
}

// Resolve derives the tenant serving this request, or nil when none can
// be determined. A cache hit performs no network I/O.
func (s *Service) Resolve(ctx context.Context, r *http.Request) (resolved *Tenant) {
	// Unexpected faults are contained here; resolution always yields a
	// tenant or nil, never a panic.
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "tenant resolution panicked", slog.Any("panic", rec))
			resolved = nil
		}
	}()

	identifier, err := s.resolver.Resolve(r)
	if err != nil {
		s.logger.WarnContext(ctx, "tenant identifier extraction failed", slog.Any("error", err))
		return nil
	}
	if identifier == "" {
		s.logger.WarnContext(ctx, "no tenant identifier in request",
			slog.String("host", r.Host), slog.String("path", r.URL.Path))
		return nil
	}

	return s.Lookup(ctx, identifier)
}

// Lookup resolves an already-extracted identifier, cache-first.
func (s *Service) Lookup(ctx context.Context, identifier string) *Tenant {
	if cached, ok := s.cache.Get(ctx, identifier); ok {
		return cached
	}

	t, err := s.provider.GetByIdentifier(ctx, identifier)
	switch {
	case errors.Is(err, ErrTenantNotFound):
		s.logger.WarnContext(ctx, "tenant not found", slog.String("identifier", identifier))
		return nil
	case err != nil:
		s.logger.ErrorContext(ctx, "tenant resolution failed",
			slog.String("identifier", identifier), slog.Any("error", err))
		return nil
	case t == nil:
		s.logger.WarnContext(ctx, "tenant not found", slog.String("identifier", identifier))
		return nil
	}

	s.cache.Set(ctx, identifier, t)
	return t
}

// Cache exposes the service's cache, mainly for administrative eviction.
func (s *Service) Cache() Cache {
	return s.cache
}
