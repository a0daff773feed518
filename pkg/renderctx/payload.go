package renderctx

// PayloadKey is the top-level key under which the client payload is
// serialized into the rendered page.
const PayloadKey = "__APP_CONFIG__"

// TenantInfo is the client-visible tenant summary. Config holds only the
// public-filtered configuration tree; the full backend configuration and
// its visibility annotations never reach the client.
type TenantInfo struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Identifier string         `json:"identifier"`
	ParentID   *string        `json:"parent_id"`
	Active     bool           `json:"is_active"`
	Internal   bool           `json:"is_internal"`
	Config     map[string]any `json:"config"`
}

// ClientPayload is the configuration object serialized to the client.
// It is a distinct mutable instance, never shared with the render
// context's AppConfig.
type ClientPayload struct {
	AppConfig

	Tenant *TenantInfo `json:"tenant"`
}

// Sanitize makes the payload client-safe: the raw session cookie name is
// server-only and is removed, the XSRF cookie name stays.
func (p *ClientPayload) Sanitize() {
	p.Session.Cookie = ""
}
