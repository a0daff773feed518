package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OverrideHeader carries the extracted identifier on every backend call,
// so the backend can disambiguate even when the URL itself is
// identifier-agnostic (gateway mode).
const OverrideHeader = "X-Tenant-Override"

// ResolutionMode selects how backend resolution URLs are formed.
type ResolutionMode string

const (
	// ModeGateway routes every resolution call to one fixed internal
	// endpoint; the identifier travels only in the override header.
	ModeGateway ResolutionMode = "gateway"
	// ModeDirect derives a per-tenant API host from the identifier.
	ModeDirect ResolutionMode = "direct"
)

// DefaultHostTemplate is the direct-mode host pattern; the single %s is
// replaced with the tenant identifier.
const DefaultHostTemplate = "https://api.%s"

// APIConfig configures the backend tenant API client.
type APIConfig struct {
	Mode ResolutionMode `env:"TENANCY_MODE" envDefault:"gateway"`

	// BaseURL is the fixed internal API base, required in gateway mode.
	BaseURL string `env:"TENANCY_API_URL"`

	// HostTemplate is the direct-mode base pattern with one %s for the
	// identifier.
	HostTemplate string `env:"TENANCY_HOST_TEMPLATE" envDefault:"https://api.%s"`

	// EndpointPrefix is the path prefix of the tenant endpoints.
	EndpointPrefix string `env:"TENANCY_ENDPOINT_PREFIX" envDefault:"tenant"`
}

// APIProvider resolves tenants against the backend HTTP API.
// It implements both Provider and Lister.
type APIProvider struct {
	cfg    APIConfig
	client *http.Client
}

// NewAPIProvider creates a backend API client. A nil httpClient falls
// back to http.DefaultClient; timeouts are whatever the injected client
// enforces.
func NewAPIProvider(cfg APIConfig, httpClient *http.Client) *APIProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.HostTemplate == "" {
		cfg.HostTemplate = DefaultHostTemplate
	}
	return &APIProvider{cfg: cfg, client: httpClient}
}

// GetByIdentifier resolves one identifier to a tenant record.
// Transport and protocol failures wrap ErrResolutionFailed; an
// affirmative miss is ErrTenantNotFound. This method never panics past
// its boundary; callers decide disposition.
func (p *APIProvider) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	base := p.cfg.BaseURL
	if p.cfg.Mode == ModeDirect {
		base = fmt.Sprintf(p.cfg.HostTemplate, identifier)
	}

	body, err := p.get(ctx, joinURL(base, p.cfg.EndpointPrefix, "protected"), identifier)
	if err != nil {
		return nil, err
	}

	return decodeTenant(body)
}

// All bulk-loads every tenant from the backend, valid only in gateway
// mode. The response must be the wrapped {"data": [...]} shape; the
// historical bare-array fallback is rejected as malformed.
func (p *APIProvider) All(ctx context.Context) ([]*Tenant, error) {
	if p.cfg.Mode != ModeGateway {
		return nil, ErrBulkFetchUnsupported
	}

	body, err := p.get(ctx, joinURL(p.cfg.BaseURL, p.cfg.EndpointPrefix, "cache"), "")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []*Tenant `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Join(ErrInvalidResponse, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: expected wrapped tenant list", ErrInvalidResponse)
	}
	return envelope.Data, nil
}

// get performs one backend call and returns the raw body for 2xx
// responses. A 404 maps to ErrTenantNotFound; everything else that goes
// wrong wraps ErrResolutionFailed.
func (p *APIProvider) get(ctx context.Context, url, identifier string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Join(ErrResolutionFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if identifier != "" {
		req.Header.Set(OverrideHeader, identifier)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrResolutionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTenantNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: backend returned %d", ErrResolutionFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrResolutionFailed, err)
	}
	return body, nil
}

// decodeTenant accepts either a wrapped {"data": Tenant} body or a bare
// Tenant body.
func decodeTenant(body []byte) (*Tenant, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}

	var t Tenant
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, errors.Join(ErrInvalidResponse, err)
	}
	if t.ID == "" && t.Identifier == "" {
		return nil, ErrTenantNotFound
	}
	return &t, nil
}

// joinURL joins a base URL with path parts, tolerating stray slashes.
func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			out += "/" + part
		}
	}
	return out
}
