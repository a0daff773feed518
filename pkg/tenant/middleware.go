package tenant

import (
	"net/http"
	"strings"
)

// ErrorHandler handles failures raised by the RequireTenant guard.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, "Tenant not found", http.StatusNotFound)
}

// Middleware resolves the request's tenant through the service and adds
// it to the request context. Resolution failures are not terminal here:
// the request proceeds without a tenant and downstream stages decide the
// not-found disposition.
func Middleware(svc *Service, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if resolved := svc.Resolve(r.Context(), r); resolved != nil {
				r = r.WithContext(WithTenant(r.Context(), resolved))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant ensures a tenant is present in the context, for routes
// that cannot render without one.
func RequireTenant(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				cfg.errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
