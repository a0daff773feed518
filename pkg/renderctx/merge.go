package renderctx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
	"github.com/ItsIrv/quvel-ui-tenancy/pkg/visibility"
)

// MergeHandler merges a public-filtered tenant configuration tree into
// one configuration view. The default handler overwrites the known app
// and frontend fields; replace it to merge custom top-level branches.
type MergeHandler func(view *AppConfig, filtered map[string]any)

// MergeStage applies a resolved tenant (or the not-found policy) to the
// request's two configuration views: the server-side render context and
// the client payload.
type MergeStage struct {
	policy  NotFoundPolicy
	handler MergeHandler
	logger  *slog.Logger
}

// MergeOption configures a MergeStage.
type MergeOption func(*MergeStage)

// WithMergeHandler replaces the default field merge behavior.
func WithMergeHandler(handler MergeHandler) MergeOption {
	return func(m *MergeStage) {
		if handler != nil {
			m.handler = handler
		}
	}
}

// WithLogger sets the merge stage logger.
func WithLogger(logger *slog.Logger) MergeOption {
	return func(m *MergeStage) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMergeStage creates a merge stage with the given not-found policy.
func NewMergeStage(policy NotFoundPolicy, opts ...MergeOption) *MergeStage {
	m := &MergeStage{
		policy:  policy,
		handler: DefaultMergeHandler,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Apply mutates the render context and client payload for the resolved
// tenant. With a nil tenant the configured not-found policy decides the
// disposition; StatusError and RedirectError returns are signals the host
// translates into HTTP responses.
func (m *MergeStage) Apply(ctx context.Context, rc *RenderContext, payload *ClientPayload, t *tenant.Tenant) error {
	if rc.Config == nil {
		rc.Config = &AppConfig{}
	}

	if t == nil {
		switch m.policy.Action {
		case ActionRender:
			// Mark the tenant as explicitly absent rather than untouched.
			rc.Tenant = nil
			rc.Resolved = true
			return nil
		case ActionRedirect:
			return &RedirectError{URL: m.policy.RedirectURL, Code: m.policy.RedirectCode}
		case ActionCustom:
			if m.policy.Handler != nil {
				return m.policy.Handler(rc, payload)
			}
			return nil
		default:
			code := m.policy.StatusCode
			if code == 0 {
				code = 404
			}
			return &StatusError{Code: code}
		}
	}

	filtered, err := t.Config.PublicValues()
	if err != nil {
		if !errors.Is(err, visibility.ErrMissingTree) {
			return err
		}
		// No annotations means nothing is exposed, never everything.
		m.logger.WarnContext(ctx, "tenant config has no visibility annotations",
			slog.String("tenant_id", t.ID))
		filtered = map[string]any{}
	}

	rc.Tenant = t
	rc.Resolved = true
	m.handler(rc.Config, filtered)
	applySessionCookies(&rc.Config.Session, t)
	if rc.Config.Trace != nil {
		rc.Config.Trace.TenantID = t.ID
	}

	m.handler(&payload.AppConfig, filtered)
	applySessionCookies(&payload.Session, t)
	payload.Tenant = &TenantInfo{
		ID:         t.ID,
		Name:       t.Name,
		Identifier: t.Identifier,
		ParentID:   t.ParentID,
		Active:     t.Active,
		Internal:   t.Internal,
		Config:     filtered,
	}
	if payload.Trace != nil {
		payload.Trace.TenantID = t.ID
	}
	payload.Sanitize()

	return nil
}

// DefaultMergeHandler overwrites the known app and frontend fields from
// the filtered configuration, only when the source field is present.
// Custom top-level branches are ignored; replace the handler to merge them.
func DefaultMergeHandler(view *AppConfig, filtered map[string]any) {
	if app, ok := filtered["app"].(map[string]any); ok {
		applySettings(&view.App, app)
	}
	if frontend, ok := filtered["frontend"].(map[string]any); ok {
		applySettings(&view.Frontend, frontend)
	}
}

func applySettings(dst *Settings, src map[string]any) {
	if v, ok := src["name"].(string); ok {
		dst.Name = v
	}
	if v, ok := src["url"].(string); ok {
		dst.URL = v
	}
	if v, ok := src["env"].(string); ok {
		dst.Env = v
	}
	if v, ok := src["debug"].(bool); ok {
		dst.Debug = v
	}
	if v, ok := src["timezone"].(string); ok {
		dst.Timezone = v
	}
	if v, ok := src["locale"].(string); ok {
		dst.Locale = v
	}
	if v, ok := src["fallback_locale"].(string); ok {
		dst.FallbackLocale = v
	}
	if v, ok := src["custom_scheme"].(string); ok {
		dst.CustomScheme = v
	}
}

// applySessionCookies fills the per-tenant cookie names: deterministic
// defaults derived from the tenant ID, overridden by names the tenant
// declares under its config "session" branch.
func applySessionCookies(session *SessionConfig, t *tenant.Tenant) {
	slug := cookieSlug(t.ID)
	session.Cookie = "tenant_" + slug + "_session"
	session.XSRFCookie = "tenant_" + slug + "_xsrf"

	declared, ok := t.Config.Values()["session"].(map[string]any)
	if !ok {
		return
	}
	if v, ok := declared["cookie"].(string); ok && v != "" {
		session.Cookie = v
	}
	if v, ok := declared["xsrf_cookie"].(string); ok && v != "" {
		session.XSRFCookie = v
	}
}

// cookieSlug reduces a tenant ID to characters safe in a cookie name.
func cookieSlug(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
