// Package tenant resolves which customer organization a server-rendered
// request belongs to.
//
// Resolution is a three-step pipeline: a Resolver derives an identifier
// from the request (domain, subdomain label, path segment, or header), a
// Cache answers repeat lookups without network I/O, and a Provider calls
// the backend tenant API on a miss. The Service composes all three and
// always yields a tenant or nil; it never propagates an error or panic to
// the request path, leaving the not-found disposition to the render
// pipeline.
//
// # Usage
//
//	provider := tenant.NewAPIProvider(tenant.APIConfig{
//		Mode:           tenant.ModeGateway,
//		BaseURL:        "http://tenants.internal",
//		EndpointPrefix: "tenant",
//	}, httpClient)
//
//	svc := tenant.NewService(
//		tenant.NewSubdomainResolver(0),
//		provider,
//		tenant.WithCache(tenant.NewMemoryCache(tenant.CacheConfig{
//			Mode: tenant.CacheModeLazy,
//			TTL:  5 * time.Minute,
//		})),
//	)
//	svc.Start(ctx)
//	defer svc.Stop()
//
//	router.Use(tenant.Middleware(svc))
//
// # Cache policies
//
// The in-process cache supports three modes: preload (entries never
// expire; the whole tenant set is bulk-loaded via Service.Start),
// lazy (per-entry TTL with a periodic sweeper and evict-on-read), and
// disabled (every lookup misses). A RedisCache backend is available for
// deployments that want warm caches across restarts; each process still
// owns its view, no cross-process coherence is attempted.
//
// # Backend wire contract
//
// Single resolution: GET <base>/<prefix>/protected with the identifier in
// the X-Tenant-Override header; the body is {"data": Tenant} or a bare
// Tenant. Bulk preload: GET <base>/<prefix>/cache, gateway mode only,
// wrapped {"data": [Tenant]} bodies only.
package tenant
