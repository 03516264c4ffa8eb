// Package navconfig loads router configuration from YAML or TOML files.
//
// A configuration file names the document origin, the routing mode, the
// start and navigation defaults, and the route templates to register:
//
//	origin: https://example.com/app
//	useHashes: true
//	trigger: true
//	pushState: true
//	routes:
//	  - /users/:id
//	  - /files/*path
//
// Environment variables NAVKIT_ORIGIN and NAVKIT_USE_HASHES override the
// corresponding file values.
package navconfig

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vitalvas/navkit/navhistory"
	"github.com/vitalvas/navkit/navmux"
	"gopkg.in/yaml.v3"
)

const defaultOrigin = "http://localhost/"

var (
	// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
	ErrUnknownFormat = errors.New("navconfig: unknown config format")

	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("navconfig: invalid config")
)

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Config is the file representation of a router setup.
type Config struct {
	// Origin is the document location the router starts at.
	Origin string `yaml:"origin" toml:"origin"`

	// UseHashes matches routes against the URL fragment.
	UseHashes bool `yaml:"useHashes" toml:"useHashes"`

	// Trigger dispatches the current location on start. Defaults to true.
	Trigger *bool `yaml:"trigger" toml:"trigger"`

	// PushState adds a history entry per navigation. Defaults to true.
	PushState *bool `yaml:"pushState" toml:"pushState"`

	// ReplaceErrorHandlers replaces the router's error handlers with the
	// ones passed to Start instead of merging them.
	ReplaceErrorHandlers bool `yaml:"replaceErrorHandlers" toml:"replaceErrorHandlers"`

	// Routes lists route templates in matching order.
	Routes []string `yaml:"routes" toml:"routes"`
}

// Load reads, parses, and validates the file at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b, format)
}

// Parse decodes data in the given format, applies defaults and
// environment overrides, and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("navconfig: parse yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("navconfig: parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Origin) == "" {
		cfg.Origin = defaultOrigin
	}
	if cfg.Trigger == nil {
		cfg.Trigger = boolPtr(true)
	}
	if cfg.PushState == nil {
		cfg.PushState = boolPtr(true)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("NAVKIT_ORIGIN")); v != "" {
		cfg.Origin = v
	}
	cfg.UseHashes = envBool("NAVKIT_USE_HASHES", cfg.UseHashes)
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func boolPtr(v bool) *bool {
	return &v
}

// Validate checks that the origin is an absolute http(s) URL and that
// every route template compiles and appears once.
func (c *Config) Validate() error {
	if _, err := c.Base(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Routes))
	for i, tpl := range c.Routes {
		if strings.TrimSpace(tpl) == "" {
			return fmt.Errorf("%w: routes[%d] is empty", ErrInvalidConfig, i)
		}
		key, err := navmux.TemplateKey(tpl)
		if err != nil {
			return fmt.Errorf("%w: routes[%d]: %w", ErrInvalidConfig, i, err)
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: routes[%d]: duplicate route %q", ErrInvalidConfig, i, key)
		}
		seen[key] = struct{}{}
		if _, err := navmux.Compile(key); err != nil {
			return fmt.Errorf("%w: routes[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Base returns the normalized origin URL.
func (c *Config) Base() (*url.URL, error) {
	origin := c.Origin
	if strings.TrimSpace(origin) == "" {
		origin = defaultOrigin
	}

	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("%w: origin: %w", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: origin must be an absolute http(s) URL, got %q", ErrInvalidConfig, origin)
	}
	return navmux.NormalizeURL(u)
}

// History returns a memory history positioned at the origin.
func (c *Config) History() (*navhistory.Memory, error) {
	base, err := c.Base()
	if err != nil {
		return nil, err
	}
	return navhistory.NewMemory(base.String())
}

// RouterOptions maps the config onto router options.
func (c *Config) RouterOptions() []navmux.Option {
	return []navmux.Option{navmux.WithHashMode(c.UseHashes)}
}

// StartOptions maps the config onto Router.Start options.
func (c *Config) StartOptions() navmux.StartOptions {
	useHashes := c.UseHashes
	return navmux.StartOptions{
		NoTrigger:            c.Trigger != nil && !*c.Trigger,
		UseHashes:            &useHashes,
		ReplaceErrorHandlers: c.ReplaceErrorHandlers,
	}
}

// NavigateOptions returns the default options for Router.Navigate.
func (c *Config) NavigateOptions() navmux.NavigateOptions {
	return navmux.NavigateOptions{
		NoPushState: c.PushState != nil && !*c.PushState,
	}
}
