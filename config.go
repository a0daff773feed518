package tenancy

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ItsIrv/quvel-ui-tenancy/pkg/tenant"
)

// Identifier extraction strategies.
const (
	StrategyDomain    = "domain"
	StrategySubdomain = "subdomain"
	StrategyPath      = "path"
	StrategyHeader    = "header"
)

// Not-found dispositions.
const (
	NotFound404      = "404"
	NotFoundRedirect = "redirect"
	NotFoundRender   = "render"
	NotFoundCustom   = "custom"
)

// Config holds the module's startup configuration. It is parsed once at
// boot and never re-read per request.
type Config struct {
	// Enabled turns the whole tenancy pipeline on or off. When disabled,
	// requests proceed without a tenant.
	Enabled bool `env:"TENANCY_ENABLED" envDefault:"true"`

	// Mode selects how backend resolution URLs are formed.
	Mode tenant.ResolutionMode `env:"TENANCY_MODE" envDefault:"gateway"`

	// Strategy selects the identifier extraction strategy.
	Strategy       string `env:"TENANCY_STRATEGY" envDefault:"domain"`
	SubdomainLevel int    `env:"TENANCY_SUBDOMAIN_LEVEL" envDefault:"0"`
	PathIndex      int    `env:"TENANCY_PATH_INDEX" envDefault:"0"`
	HeaderName     string `env:"TENANCY_HEADER_NAME" envDefault:"X-Tenant-ID"`

	// APIURL is the fixed internal backend base URL, required in gateway
	// mode.
	APIURL         string `env:"TENANCY_API_URL"`
	HostTemplate   string `env:"TENANCY_HOST_TEMPLATE" envDefault:"https://api.%s"`
	EndpointPrefix string `env:"TENANCY_ENDPOINT_PREFIX" envDefault:"tenant"`

	CacheMode tenant.CacheMode `env:"TENANCY_CACHE_MODE" envDefault:"lazy"`
	CacheTTL  time.Duration    `env:"TENANCY_CACHE_TTL" envDefault:"5m"`

	// NotFound selects the disposition for requests that resolve to no
	// tenant: 404, redirect, render, or custom.
	NotFound     string `env:"TENANCY_NOT_FOUND" envDefault:"404"`
	RedirectURL  string `env:"TENANCY_REDIRECT_URL"`
	RedirectCode int    `env:"TENANCY_REDIRECT_CODE" envDefault:"302"`
}

// DefaultConfig returns the configuration used when nothing is set in the
// environment.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Mode:           tenant.ModeGateway,
		Strategy:       StrategyDomain,
		HeaderName:     "X-Tenant-ID",
		HostTemplate:   tenant.DefaultHostTemplate,
		EndpointPrefix: "tenant",
		CacheMode:      tenant.CacheModeLazy,
		CacheTTL:       5 * time.Minute,
		NotFound:       NotFound404,
		RedirectCode:   302,
	}
}

// Load reads the configuration from the environment, honoring a .env
// file when present.
func Load() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks the configuration for defects that must abort startup.
func (c Config) Validate() error {
	switch c.Mode {
	case tenant.ModeGateway:
		if c.APIURL == "" {
			return ErrMissingAPIURL
		}
	case tenant.ModeDirect:
	default:
		return fmt.Errorf("%w: unknown resolution mode %q", ErrInvalidConfig, c.Mode)
	}

	switch c.Strategy {
	case StrategyDomain, StrategySubdomain, StrategyPath, StrategyHeader:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}

	switch c.CacheMode {
	case tenant.CacheModePreload, tenant.CacheModeLazy, tenant.CacheModeDisabled:
	default:
		return fmt.Errorf("%w: unknown cache mode %q", ErrInvalidConfig, c.CacheMode)
	}
	if c.CacheMode == tenant.CacheModePreload && c.Mode != tenant.ModeGateway {
		return fmt.Errorf("%w: preload cache requires gateway mode", ErrInvalidConfig)
	}

	switch c.NotFound {
	case NotFound404, NotFoundRender, NotFoundCustom:
	case NotFoundRedirect:
		if c.RedirectURL == "" {
			return fmt.Errorf("%w: redirect policy requires TENANCY_REDIRECT_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown not-found policy %q", ErrInvalidConfig, c.NotFound)
	}

	return nil
}
