package tenant

import (
	"context"
	"time"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/visibility"
)

// visibilityKey is the configuration sub-tree that carries per-field
// exposure annotations rather than configuration values.
const visibilityKey = "visibility"

// Config is a tenant's nested configuration tree as supplied by the
// backend. It may carry a parallel annotation sub-tree under the
// "visibility" key; that sub-tree labels fields, it is not itself a field.
type Config map[string]any

// Values returns the configuration tree without the visibility annotation
// sub-tree. The returned map shares sub-trees with the original; callers
// treat tenant records as immutable snapshots.
func (c Config) Values() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(c))
	for k, v := range c {
		if k == visibilityKey {
			continue
		}
		out[k] = v
	}
	return out
}

// Visibility returns the annotation sub-tree, or nil if the backend did
// not declare one.
func (c Config) Visibility() visibility.Tree {
	tree, _ := c[visibilityKey].(map[string]any)
	return tree
}

// PublicValues returns the client-safe subset of the configuration.
// It fails with visibility.ErrMissingTree when no annotations exist;
// configuration is never exposed without explicit backend declarations.
func (c Config) PublicValues() (map[string]any, error) {
	return visibility.FilterPublic(c.Values(), c.Visibility())
}

// Tenant is one customer organization as resolved from the backend.
// Records are immutable value snapshots once resolved; the embedded
// parent, when present, is a copy rather than a live reference and is
// at most one level deep.
type Tenant struct {
	ID         string    `json:"id" yaml:"id"`
	Identifier string    `json:"identifier" yaml:"identifier"`
	Name       string    `json:"name" yaml:"name"`
	ParentID   *string   `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Active     bool      `json:"is_active" yaml:"is_active"`
	Internal   bool      `json:"is_internal" yaml:"is_internal"`
	Config     Config    `json:"config" yaml:"config"`
	CreatedAt  time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Parent     *Tenant   `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// CacheKey returns the key a resolved record is stored under: the
// externally addressable identifier, falling back to the record ID when
// the backend omitted one.
func (t *Tenant) CacheKey() string {
	if t.Identifier != "" {
		return t.Identifier
	}
	return t.ID
}

// Provider resolves a tenant identifier to a full record.
type Provider interface {
	// GetByIdentifier retrieves a tenant by its externally addressable
	// identifier (domain, subdomain, path segment, or header value).
	// Returns ErrTenantNotFound if the backend has no matching tenant.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}

// Lister loads every tenant the backend knows about, used to warm a
// preload-mode cache at startup.
type Lister interface {
	All(ctx context.Context) ([]*Tenant, error)
}
