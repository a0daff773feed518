package tenant

import (
	"log/slog"
	"time"
)

// defaultCacheTTL applies when no cache was injected into the service.
const defaultCacheTTL = 5 * time.Minute

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache replaces the default lazy in-process cache.
func WithCache(cache Cache) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPreload enables a one-shot bulk load on Start, inserting every
// record the lister returns.
func WithPreload(lister Lister) ServiceOption {
	return func(s *Service) {
		if lister != nil {
			s.preload = true
			s.lister = lister
		}
	}
}

// middlewareConfig holds middleware configuration.
type middlewareConfig struct {
	skipPaths    []string
	errorHandler ErrorHandler
}

// MiddlewareOption configures the resolution middleware.
type MiddlewareOption func(*middlewareConfig)

// WithSkipPaths sets path prefixes that bypass tenant resolution.
func WithSkipPaths(paths []string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipPaths = paths
	}
}

// WithErrorHandler sets the handler used by RequireTenant guards.
func WithErrorHandler(handler ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}
