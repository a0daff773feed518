package renderctx

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
)

// RenderContext is the per-request server-side render state. It is
// created once per request on first need, owned exclusively by that
// request's processing path, and never shared across requests.
type RenderContext struct {
	StartedAt time.Time
	RequestID string

	// Tenant is the resolved tenant, nil when resolution failed or the
	// render not-found policy proceeded without one. Resolved reports
	// whether resolution has run, so a nil Tenant after resolution is an
	// explicit outcome rather than an untouched field.
	Tenant   *tenant.Tenant
	Resolved bool

	Config *AppConfig
}

// New creates a fresh render context with a generated request ID.
func New() *RenderContext {
	return &RenderContext{
		StartedAt: time.Now(),
		RequestID: uuid.NewString(),
		Config:    &AppConfig{},
	}
}

// contextKey is a private type to prevent context key collisions.
type contextKey struct{}

// Attach returns a context carrying rc's render context, creating one
// lazily when the context has none yet. The same instance is returned for
// repeat calls on the derived context.
func Attach(ctx context.Context) (context.Context, *RenderContext) {
	if rc, ok := FromContext(ctx); ok {
		return ctx, rc
	}
	rc := New()
	return context.WithValue(ctx, contextKey{}, rc), rc
}

// FromContext retrieves the render context, if one was attached.
func FromContext(ctx context.Context) (*RenderContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(*RenderContext)
	return rc, ok && rc != nil
}
