package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts a tenant identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the tenant identifier from the request.
	// Returns empty string if no identifier can be derived.
	// Returns error only if extraction itself fails.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls the function.
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// requestHost returns the effective host of a request: the forwarded host
// when a proxy supplied one, then the Host header, then the URL hostname.
// Any port suffix is stripped.
func requestHost(r *http.Request) string {
	host := r.Header.Get("X-Forwarded-Host")
	if host != "" {
		// Proxies may append hops as a comma-separated list; the first
		// entry is the client-facing host.
		if idx := strings.Index(host, ","); idx != -1 {
			host = host[:idx]
		}
		host = strings.TrimSpace(host)
	}
	if host == "" {
		host = r.Host
	}
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	// Drop a port suffix, keeping IPv6 literals intact.
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx:], "]") {
		host = host[:idx]
	}
	return host
}

// DomainResolver uses the request's full host as the tenant identifier.
type DomainResolver struct{}

// NewDomainResolver creates a resolver keyed on the full request host.
func NewDomainResolver() *DomainResolver {
	return &DomainResolver{}
}

// Resolve returns the effective request host with the port stripped.
func (d *DomainResolver) Resolve(r *http.Request) (string, error) {
	return requestHost(r), nil
}

// SubdomainResolver extracts one subdomain label from the request host.
// Level counts labels left to right: for "x.y.app.com" level 0 is "x" and
// level 1 is "y". The base two labels ("app.com") are never identifiers.
type SubdomainResolver struct {
	Level int
}

// NewSubdomainResolver creates a resolver for the subdomain label at the
// given level.
func NewSubdomainResolver(level int) *SubdomainResolver {
	return &SubdomainResolver{Level: level}
}

// Resolve returns the subdomain label at the configured level, or empty
// when the host has no subdomain beyond its base two labels.
func (s *SubdomainResolver) Resolve(r *http.Request) (string, error) {
	host := requestHost(r)
	if host == "" {
		return "", nil
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return "", nil
	}
	if s.Level < 0 || s.Level >= len(labels)-2 {
		return "", nil
	}
	return labels[s.Level], nil
}

// PathResolver extracts a path segment as the tenant identifier.
// Index is zero-based over the non-empty segments: for "/t/dashboard"
// index 0 is "t" and index 1 is "dashboard".
type PathResolver struct {
	Index int
}

// NewPathResolver creates a resolver for the path segment at index.
func NewPathResolver(index int) *PathResolver {
	return &PathResolver{Index: index}
}

// Resolve returns the path segment at the configured index, or empty when
// the path has no such segment.
func (p *PathResolver) Resolve(r *http.Request) (string, error) {
	if r.URL == nil {
		return "", nil
	}

	segments := make([]string, 0, 4)
	for _, part := range strings.Split(r.URL.Path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}

	if p.Index < 0 || p.Index >= len(segments) {
		return "", nil
	}
	return segments[p.Index], nil
}

// HeaderResolver reads the tenant identifier from an HTTP header verbatim.
type HeaderResolver struct {
	Name string
}

// NewHeaderResolver creates a header resolver.
// Defaults to "X-Tenant-ID" if name is empty.
func NewHeaderResolver(name string) *HeaderResolver {
	if name == "" {
		name = "X-Tenant-ID"
	}
	return &HeaderResolver{Name: name}
}

// Resolve returns the header value, or empty when the header is absent.
func (h *HeaderResolver) Resolve(r *http.Request) (string, error) {
	return r.Header.Get(h.Name), nil
}

// CompositeResolver tries multiple resolvers in order until one yields a
// non-empty identifier.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a new composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

// Resolve returns the first non-empty result, aggregating any errors.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error

	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver errors: %w", errors.Join(errs...))
	}
	return "", nil
}
