// Package config loads layered configuration (defaults, TOML/YAML/JSON
// files, environment overrides) into a koanf store with dot-delimited
// lookups, and binds subtrees onto structs.
//
// Later layers win: defaults first, then files in the order given, then
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kitmi/k-utils/pkg/errors"
	"github.com/kitmi/k-utils/pkg/logging"
)

// Config is a loaded, read-mostly configuration store.
type Config struct {
	k *koanf.Koanf
}

type options struct {
	defaults  map[string]any
	files     []fileLayer
	envPrefix string
}

type fileLayer struct {
	path     string
	optional bool
}

// Option adjusts Load behavior.
type Option func(*options)

// WithDefaults seeds the lowest-precedence layer from a nested map.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) { o.defaults = defaults }
}

// WithFile adds a required configuration file layer. The format is picked
// by extension: .toml, .yaml/.yml, or .json.
func WithFile(path string) Option {
	return func(o *options) { o.files = append(o.files, fileLayer{path: path}) }
}

// WithOptionalFile is WithFile for files that may not exist.
func WithOptionalFile(path string) Option {
	return func(o *options) { o.files = append(o.files, fileLayer{path: path, optional: true}) }
}

// WithEnvPrefix adds the highest-precedence layer from environment
// variables: PREFIX_SERVER_PORT=9 becomes server.port=9.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.envPrefix = prefix }
}

// Load builds a Config from the given layers.
func Load(opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if o.defaults != nil {
		if err := k.Load(confmap.Provider(o.defaults, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
		}
	}

	for _, layer := range o.files {
		if layer.optional {
			if _, err := os.Stat(layer.path); err != nil {
				logger.Debug().Str("path", layer.path).Msg("Optional config file not found")
				continue
			}
		}
		parser, err := parserFor(layer.path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(layer.path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", layer.path)
		}
		logger.Debug().Str("path", layer.path).Msg("Loaded config file")
	}

	if o.envPrefix != "" {
		prefix := strings.TrimSuffix(o.envPrefix, "_") + "_"
		err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	return &Config{k: k}, nil
}

// FromMap wraps an existing nested map as a Config without copying layers.
func FromMap(m map[string]any) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load map")
	}
	return &Config{k: k}, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path))
	}
}

// Get returns the value at a dot-delimited key, or nil when absent.
func (c *Config) Get(key string) any {
	return c.k.Get(key)
}

// GetDefault returns the value at a dot-delimited key, or defaultValue
// when the key is not set.
func (c *Config) GetDefault(key string, defaultValue any) any {
	if !c.k.Exists(key) {
		return defaultValue
	}
	return c.k.Get(key)
}

// Has reports whether a dot-delimited key is set.
func (c *Config) Has(key string) bool {
	return c.k.Exists(key)
}

// String returns a string value ("" when absent or not a string-ish value).
func (c *Config) String(key string) string {
	return c.k.String(key)
}

// Int returns an int value (0 when absent).
func (c *Config) Int(key string) int {
	return c.k.Int(key)
}

// Bool returns a bool value (false when absent).
func (c *Config) Bool(key string) bool {
	return c.k.Bool(key)
}

// Raw returns the configuration as a nested map[string]any, suitable for
// the dotpath accessor. The map is a copy; mutating it does not change
// the Config.
func (c *Config) Raw() map[string]any {
	return c.k.Raw()
}

// Bind decodes the subtree at key (or the whole configuration for "")
// onto a struct. Weakly typed: "8080" binds to an int field.
func (c *Config) Bind(key string, out any) error {
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := c.k.UnmarshalWithConf(key, out, conf); err != nil {
		return errors.Wrapf(err, errors.ErrConfigBind, "failed to bind config at %q", key)
	}
	return nil
}
