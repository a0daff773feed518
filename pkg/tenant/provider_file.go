package tenant

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileProvider serves tenants from a static YAML fixture file, loaded
// once at construction. It is meant for development setups and preload
// fixtures where no backend API is available.
//
// The file holds a list of tenant records:
//
//	- id: "01HXK..."
//	  identifier: "acme.example.com"
//	  name: "Acme"
//	  is_active: true
//	  config:
//	    app:
//	      name: "Acme"
//	    visibility:
//	      app:
//	        name: public
type FileProvider struct {
	byIdentifier map[string]*Tenant
	all          []*Tenant
}

// NewFileProvider loads the fixture file and indexes records by their
// cache key (identifier, falling back to ID).
func NewFileProvider(path string) (*FileProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tenant fixture file: %w", err)
	}

	var records []*Tenant
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse tenant fixture file %s: %w", path, err)
	}

	p := &FileProvider{
		byIdentifier: make(map[string]*Tenant, len(records)),
		all:          records,
	}
	for _, t := range records {
		if t == nil {
			continue
		}
		p.byIdentifier[t.CacheKey()] = t
	}
	return p, nil
}

// GetByIdentifier returns the fixture tenant for identifier, or
// ErrTenantNotFound.
func (p *FileProvider) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	t, ok := p.byIdentifier[identifier]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return t, nil
}

// All returns every fixture tenant.
func (p *FileProvider) All(ctx context.Context) ([]*Tenant, error) {
	return p.all, nil
}
