package tenancy

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/renderctx"
	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
)

// Tenancy wires configuration into the full per-request pipeline:
// identifier extraction, cache-first resolution, and visibility-filtered
// configuration merging. All collaborators are passed explicitly at
// construction; Start and Stop bound the owned resources.
type Tenancy struct {
	cfg     Config
	service *tenant.Service
	merge   *renderctx.MergeStage
	logger  *slog.Logger
}

type options struct {
	httpClient      *http.Client
	logger          *slog.Logger
	cache           tenant.Cache
	provider        tenant.Provider
	lister          tenant.Lister
	mergeHandler    renderctx.MergeHandler
	notFoundHandler renderctx.NotFoundHandler
}

// Option injects a collaborator into New.
type Option func(*options)

// WithHTTPClient sets the client used for backend API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithLogger sets the logger shared by the pipeline stages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCache replaces the config-derived cache, e.g. with a RedisCache.
func WithCache(cache tenant.Cache) Option {
	return func(o *options) { o.cache = cache }
}

// WithProvider replaces the backend API provider, e.g. with a
// FileProvider for development. Providers that also implement
// tenant.Lister serve cache preloading too.
func WithProvider(provider tenant.Provider) Option {
	return func(o *options) {
		o.provider = provider
		if lister, ok := provider.(tenant.Lister); ok {
			o.lister = lister
		}
	}
}

// WithMergeHandler replaces the default configuration merge behavior.
func WithMergeHandler(handler renderctx.MergeHandler) Option {
	return func(o *options) { o.mergeHandler = handler }
}

// WithNotFoundHandler supplies the handler for the custom not-found
// policy.
func WithNotFoundHandler(handler renderctx.NotFoundHandler) Option {
	return func(o *options) { o.notFoundHandler = handler }
}

// New validates cfg and builds the pipeline. Configuration defects are
// fatal here, at boot, never per request.
func New(cfg Config, opts ...Option) (*Tenancy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.NotFound == NotFoundCustom && o.notFoundHandler == nil {
		return nil, ErrMissingNotFoundHandler
	}

	provider := o.provider
	if provider == nil {
		api := tenant.NewAPIProvider(tenant.APIConfig{
			Mode:           cfg.Mode,
			BaseURL:        cfg.APIURL,
			HostTemplate:   cfg.HostTemplate,
			EndpointPrefix: cfg.EndpointPrefix,
		}, o.httpClient)
		provider = api
		if o.lister == nil {
			o.lister = api
		}
	}

	cache := o.cache
	if cache == nil {
		cache = tenant.NewMemoryCache(tenant.CacheConfig{
			Mode: cfg.CacheMode,
			TTL:  cfg.CacheTTL,
		})
	}

	serviceOpts := []tenant.ServiceOption{
		tenant.WithCache(cache),
		tenant.WithLogger(o.logger),
	}
	if cfg.CacheMode == tenant.CacheModePreload && o.lister != nil {
		serviceOpts = append(serviceOpts, tenant.WithPreload(o.lister))
	}

	svc := tenant.NewService(buildResolver(cfg), provider, serviceOpts...)

	merge := renderctx.NewMergeStage(
		buildPolicy(cfg, o.notFoundHandler),
		renderctx.WithLogger(o.logger),
		mergeHandlerOption(o.mergeHandler),
	)

	return &Tenancy{
		cfg:     cfg,
		service: svc,
		merge:   merge,
		logger:  o.logger,
	}, nil
}

func mergeHandlerOption(handler renderctx.MergeHandler) renderctx.MergeOption {
	if handler == nil {
		return renderctx.WithMergeHandler(renderctx.DefaultMergeHandler)
	}
	return renderctx.WithMergeHandler(handler)
}

func buildResolver(cfg Config) tenant.Resolver {
	switch cfg.Strategy {
	case StrategySubdomain:
		return tenant.NewSubdomainResolver(cfg.SubdomainLevel)
	case StrategyPath:
		return tenant.NewPathResolver(cfg.PathIndex)
	case StrategyHeader:
		return tenant.NewHeaderResolver(cfg.HeaderName)
	default:
		return tenant.NewDomainResolver()
	}
}

func buildPolicy(cfg Config, custom renderctx.NotFoundHandler) renderctx.NotFoundPolicy {
	switch cfg.NotFound {
	case NotFoundRedirect:
		return renderctx.NotFoundRedirect(cfg.RedirectURL, cfg.RedirectCode)
	case NotFoundRender:
		return renderctx.NotFoundRender()
	case NotFoundCustom:
		return renderctx.NotFoundCustom(custom)
	default:
		return renderctx.NotFoundStatus(http.StatusNotFound)
	}
}

// Start warms the cache when preloading is configured. Idempotent.
func (t *Tenancy) Start(ctx context.Context) {
	if !t.cfg.Enabled {
		return
	}
	t.service.Start(ctx)
}

// Stop releases the cache and its background sweeper. Idempotent and
// safe even if Start never ran.
func (t *Tenancy) Stop() {
	t.service.Stop()
}

// Service exposes the resolution service for administrative use.
func (t *Tenancy) Service() *tenant.Service {
	return t.service
}

// Middleware resolves the tenant for every request and stores it in the
// request context. With tenancy disabled it is a pass-through.
func (t *Tenancy) Middleware(opts ...tenant.MiddlewareOption) func(http.Handler) http.Handler {
	if !t.cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return tenant.Middleware(t.service, opts...)
}

// Handle runs the full pipeline for one request: attach the per-request
// render context, resolve the tenant, and merge its filtered
// configuration into both views. The returned error, when non-nil, is a
// renderctx.StatusError or renderctx.RedirectError the host must
// translate into an HTTP response.
func (t *Tenancy) Handle(ctx context.Context, r *http.Request) (context.Context, *renderctx.RenderContext, *renderctx.ClientPayload, error) {
	ctx, rc := renderctx.Attach(ctx)
	payload := &renderctx.ClientPayload{}

	if !t.cfg.Enabled {
		return ctx, rc, payload, nil
	}

	resolved := t.service.Resolve(ctx, r)
	if resolved != nil {
		ctx = tenant.WithTenant(ctx, resolved)
	}

	if err := t.merge.Apply(ctx, rc, payload, resolved); err != nil {
		return ctx, rc, nil, err
	}
	return ctx, rc, payload, nil
}
