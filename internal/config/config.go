package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/pattern"
)

const (
	// ConfigFileName is the name of the default configuration file.
	ConfigFileName = "routematch.json"

	// DefaultAddr is the default listen address for `routematch serve`.
	DefaultAddr = "localhost:8080"

	// DefaultMetricsNamespace prefixes the Prometheus metric names.
	DefaultMetricsNamespace = "routematch"

	// DefaultTracerName is the OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/routematch"

	// DefaultTracingEndpoint is the OTLP/HTTP collector address.
	DefaultTracingEndpoint = "localhost:4318"

	// DefaultServiceName is the service.name resource attribute.
	DefaultServiceName = "routematch"

	// DefaultSampleRatePercentage traces every resolution.
	DefaultSampleRatePercentage = 100
)

// ConfigFileNames lists the file names Load looks for, in order.
var ConfigFileNames = []string{
	ConfigFileName,
	"routematch.yaml",
	"routematch.yml",
	"routematch.toml",
}

// Config represents the complete routematch configuration.
type Config struct {
	// TrailingSlash lets path patterns ending in a literal or an optional
	// group also match with a trailing "/". Defaults to true.
	TrailingSlash *bool `json:"trailingSlash,omitempty" yaml:"trailingSlash,omitempty" toml:"trailingSlash,omitempty"`

	// MaxDepth limits optional-group nesting. Zero means the default.
	MaxDepth int `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty" toml:"maxDepth,omitempty"`

	// CacheSize is the number of compiled patterns kept in memory.
	CacheSize int `json:"cacheSize,omitempty" yaml:"cacheSize,omitempty" toml:"cacheSize,omitempty"`

	// CollapseSlashes merges repeated "/" in request paths before matching.
	CollapseSlashes bool `json:"collapseSlashes,omitempty" yaml:"collapseSlashes,omitempty" toml:"collapseSlashes,omitempty"`

	// Routes is the route table, tried in order.
	Routes []RouteConfig `json:"routes,omitempty" yaml:"routes,omitempty" toml:"routes,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty" toml:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty" toml:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty" toml:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouteConfig is one named route.
type RouteConfig struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Pattern string `json:"pattern" yaml:"pattern" toml:"pattern"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the address to listen on.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" toml:"addr,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty" toml:"tracerName,omitempty"`

	// Endpoint is the OTLP/HTTP collector host:port spans are exported to.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`

	// Insecure disables TLS towards the collector.
	Insecure bool `json:"insecure,omitempty" yaml:"insecure,omitempty" toml:"insecure,omitempty"`

	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName,omitempty" toml:"serviceName,omitempty"`

	// SampleRatePercentage is the share of root spans kept, 0 to 100.
	SampleRatePercentage *int `json:"sampleRatePercentage,omitempty" yaml:"sampleRatePercentage,omitempty" toml:"sampleRatePercentage,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory. It looks for
// each of ConfigFileNames in turn.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension: .yaml/.yml, .toml, anything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + format(path))
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// format names the encoding used for path.
func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "YAML"
	case ".toml":
		return "TOML"
	default:
		return "JSON"
	}
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case "YAML":
		return yaml.Unmarshal(data, cfg)
	case "TOML":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(path string, cfg *Config) ([]byte, error) {
	switch format(path) {
	case "YAML":
		return yaml.Marshal(cfg)
	case "TOML":
		return toml.Marshal(cfg)
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		// Add newline at end of file
		return append(data, '\n'), nil
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in the format
// its extension selects.
func (c *Config) SaveTo(path string) error {
	data, err := encode(path, c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.TrailingSlash == nil {
		enabled := true
		c.TrailingSlash = &enabled
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = pattern.DefaultMaxDepth
	}
	if c.CacheSize == 0 {
		c.CacheSize = pattern.DefaultCacheSize
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = DefaultServiceName
	}
	if c.Tracing.SampleRatePercentage == nil {
		rate := DefaultSampleRatePercentage
		c.Tracing.SampleRatePercentage = &rate
	}
}

// Validate checks if the configuration is valid. Every route pattern is
// compiled with the configured options.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New("E122").
			WithDetail("maxDepth must not be negative")
	}
	if c.CacheSize < 0 {
		return errors.New("E122").
			WithDetail("cacheSize must not be negative")
	}
	if rate := c.Tracing.SampleRatePercentage; rate != nil && (*rate < 0 || *rate > 100) {
		return errors.New("E122").
			WithDetail("tracing.sampleRatePercentage must be between 0 and 100, got " + strconv.Itoa(*rate))
	}

	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if r.Name == "" {
			return errors.New("E121").
				WithDetail("routes[" + strconv.Itoa(i) + "] has no name")
		}
		if seen[r.Name] {
			return errors.New("E203").WithRoute(r.Name)
		}
		seen[r.Name] = true

		if _, err := pattern.Compile(r.Pattern, c.PatternOptions()...); err != nil {
			return errors.FromPatternError(err).WithRoute(r.Name)
		}
	}
	return nil
}

// PatternOptions returns the compile options the configuration selects.
func (c *Config) PatternOptions() []pattern.Option {
	trailing := c.TrailingSlash == nil || *c.TrailingSlash
	return []pattern.Option{
		pattern.WithTrailingSlash(trailing),
		pattern.WithMaxDepth(c.MaxDepth),
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindRoot walks up directories to find the one holding a config file.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or the nearest parent that has one.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
