package renderctx

// Settings is one branch of the application configuration mutated by the
// merge stage. The same shape serves the server app branch and the
// frontend branch.
type Settings struct {
	Name           string `json:"name,omitempty"`
	URL            string `json:"url,omitempty"`
	Env            string `json:"env,omitempty"`
	Debug          bool   `json:"debug,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	Locale         string `json:"locale,omitempty"`
	FallbackLocale string `json:"fallback_locale,omitempty"`
	CustomScheme   string `json:"custom_scheme,omitempty"`
}

// SessionConfig carries the per-tenant cookie names. The raw session
// cookie name is server-only and must be stripped from client payloads;
// the XSRF cookie name is client-safe.
type SessionConfig struct {
	Cookie     string `json:"cookie,omitempty"`
	XSRFCookie string `json:"xsrf_cookie,omitempty"`
}

// TraceContext is the optional trace correlation object. When present on
// a view, the merge stage stamps the resolved tenant ID into it.
type TraceContext struct {
	TenantID  string `json:"tenant,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AppConfig is the evolving application configuration of one view. The
// per-request render context holds one instance and the client payload
// embeds a separate instance; the two are never the same object.
type AppConfig struct {
	App      Settings      `json:"app"`
	Frontend Settings      `json:"frontend"`
	Session  SessionConfig `json:"session"`
	Trace    *TraceContext `json:"trace,omitempty"`
}
