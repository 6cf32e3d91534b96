package routematch

import (
	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/pkg/middleware"
	"github.com/vango-dev/routematch/pkg/pattern"
	"github.com/vango-dev/routematch/pkg/router"
)

// Load builds a router from the routematch configuration file in dir:
// routematch.json, .yaml, .yml or .toml, tried in that order. Routes are
// added without handlers; bind them with Router.Handle.
func Load(dir string, opts ...router.Option) (*router.Router, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg, opts...)
}

// LoadFile is like Load for an explicit file path.
func LoadFile(path string, opts ...router.Option) (*router.Router, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg, opts...)
}

// FromConfig builds a router from a loaded configuration. Metrics and
// tracing middleware are installed when the configuration enables them,
// ahead of any middleware in opts.
func FromConfig(cfg *config.Config, opts ...router.Option) (*router.Router, error) {
	cache, err := pattern.NewCache(cfg.CacheSize, cfg.PatternOptions()...)
	if err != nil {
		return nil, err
	}

	base := []router.Option{
		router.WithCache(cache),
		router.WithCollapseSlashes(cfg.CollapseSlashes),
	}
	if cfg.Metrics.Enabled {
		base = append(base, router.WithMiddleware(
			middleware.Prometheus(middleware.WithNamespace(cfg.Metrics.Namespace)),
		))
	}
	if cfg.Tracing.Enabled {
		base = append(base, router.WithMiddleware(
			middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)),
		))
	}

	r := router.NewRouter(append(base, opts...)...)
	for _, rc := range cfg.Routes {
		if err := r.Add(rc.Name, rc.Pattern, nil); err != nil {
			middleware.RecordCompileError(err)
			return nil, err
		}
	}
	middleware.RecordRoutes(len(cfg.Routes))

	return r, nil
}
