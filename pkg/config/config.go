// Package config handles loading and validation of oascaffold settings.
//
// Settings are resolved with the usual precedence: flags, then
// OASCAFFOLD_* environment variables, then the project file
// (.oascaffold.yaml), then the user file in the XDG config directory, then
// built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/CliForge/oascaffold/pkg/cache"
	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/extract"
)

// ProjectFile is the per-project configuration file name.
const ProjectFile = ".oascaffold.yaml"

// Config is the complete oascaffold configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Layout    LayoutConfig    `mapstructure:"layout" yaml:"layout"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
}

// LogConfig configures terminal logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, none.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is text or json.
	Format string `mapstructure:"format" yaml:"format"`
}

// GeneratorConfig configures the external binding generator.
type GeneratorConfig struct {
	// Command is the generator command line, e.g.
	// "npx @openapitools/openapi-generator-cli".
	Command string `mapstructure:"command" yaml:"command"`
	// Name is the generator target passed with -g.
	Name string `mapstructure:"name" yaml:"name"`
	// Version is a semver constraint the installed generator must satisfy.
	Version string `mapstructure:"version" yaml:"version"`
	// Properties are key=value pairs passed as --additional-properties.
	// They are a list because configuration keys are case-insensitive and
	// generator properties are not.
	Properties []string `mapstructure:"properties" yaml:"properties,omitempty"`
	// Output is the bindings directory, relative to the project.
	Output string `mapstructure:"output" yaml:"output"`
}

// LayoutConfig describes the generated bindings and the command layer.
type LayoutConfig struct {
	ClientFile    string   `mapstructure:"client_file" yaml:"client_file"`
	ClientType    string   `mapstructure:"client_type" yaml:"client_type"`
	Suffix        string   `mapstructure:"suffix" yaml:"suffix"`
	ServiceSuffix string   `mapstructure:"service_suffix" yaml:"service_suffix"`
	UnitPattern   string   `mapstructure:"unit_pattern" yaml:"unit_pattern"`
	SkipSuffixes  []string `mapstructure:"skip_suffixes" yaml:"skip_suffixes"`
	// CLIDir is where the command layer is generated.
	CLIDir string `mapstructure:"cli_dir" yaml:"cli_dir"`
	// Filter is an expression selecting the operations to generate.
	Filter string `mapstructure:"filter" yaml:"filter,omitempty"`
}

// OutputConfig configures command output.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// CacheConfig configures the spec download cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	layout := extract.DefaultLayout("")
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Generator: GeneratorConfig{
			Command: "openapi-generator",
			Name:    "go",
			Version: ">= 7.0.0",
			Properties: []string{
				"packageName=openapi",
				"isGoSubmodule=true",
				"withGoMod=false",
			},
			Output: "openapi",
		},
		Layout: LayoutConfig{
			ClientFile:    layout.ClientFile,
			ClientType:    layout.ClientType,
			Suffix:        layout.Suffix,
			ServiceSuffix: layout.ServiceSuffix,
			UnitPattern:   layout.UnitPattern,
			SkipSuffixes:  layout.SkipSuffixes,
			CLIDir:        "internal/cli",
		},
		Output: OutputConfig{Format: "table"},
		Cache:  CacheConfig{Enabled: true},
	}
}

// ExtractLayout returns the layout of bindings generated below dir.
func (c *Config) ExtractLayout(dir string) extract.Layout {
	return extract.Layout{
		Dir:           dir,
		ClientFile:    c.Layout.ClientFile,
		ClientType:    c.Layout.ClientType,
		Suffix:        c.Layout.Suffix,
		ServiceSuffix: c.Layout.ServiceSuffix,
		UnitPattern:   c.Layout.UnitPattern,
		SkipSuffixes:  c.Layout.SkipSuffixes,
	}
}

// Loader resolves a Config from files, environment and flags.
type Loader struct {
	appName   string
	envPrefix string
	v         *viper.Viper
}

// NewLoader creates a loader for appName.
func NewLoader(appName string) *Loader {
	l := &Loader{
		appName:   appName,
		envPrefix: strings.ToUpper(strings.ReplaceAll(appName, "-", "_")),
		v:         viper.New(),
	}
	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()
	l.setDefaults(Default())
	return l
}

func (l *Loader) setDefaults(d *Config) {
	l.v.SetDefault("log.level", d.Log.Level)
	l.v.SetDefault("log.format", d.Log.Format)
	l.v.SetDefault("generator.command", d.Generator.Command)
	l.v.SetDefault("generator.name", d.Generator.Name)
	l.v.SetDefault("generator.version", d.Generator.Version)
	l.v.SetDefault("generator.properties", d.Generator.Properties)
	l.v.SetDefault("generator.output", d.Generator.Output)
	l.v.SetDefault("layout.client_file", d.Layout.ClientFile)
	l.v.SetDefault("layout.client_type", d.Layout.ClientType)
	l.v.SetDefault("layout.suffix", d.Layout.Suffix)
	l.v.SetDefault("layout.service_suffix", d.Layout.ServiceSuffix)
	l.v.SetDefault("layout.unit_pattern", d.Layout.UnitPattern)
	l.v.SetDefault("layout.skip_suffixes", d.Layout.SkipSuffixes)
	l.v.SetDefault("layout.cli_dir", d.Layout.CLIDir)
	l.v.SetDefault("layout.filter", d.Layout.Filter)
	l.v.SetDefault("output.format", d.Output.Format)
	l.v.SetDefault("cache.enabled", d.Cache.Enabled)
	l.v.SetDefault("cache.dir", d.Cache.Dir)
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"format":     "output.format",
	"filter":     "layout.filter",
}

// BindFlags binds the known flags of fs. Flags fs does not define are
// skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	if f := fs.Lookup("no-cache"); f != nil && f.Changed {
		l.v.Set("cache.enabled", false)
	}
	return nil
}

// Load reads the configuration. An explicit path must exist; otherwise the
// user file and projectDir/.oascaffold.yaml are merged when present.
func (l *Loader) Load(path, projectDir string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		for _, p := range []string{l.UserConfigPath(), filepath.Join(projectDir, ProjectFile)} {
			if err := l.merge(p); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) merge(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	l.v.SetConfigFile(path)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	return nil
}

// UserConfigPath returns the XDG-compliant user config file path.
func (l *Loader) UserConfigPath() string {
	if custom := os.Getenv(l.envPrefix + "_CONFIG"); custom != "" {
		return custom
	}
	return filepath.Join(xdg.ConfigHome, l.appName, "config.yaml")
}

// CacheDir returns the cache directory for cfg.
func (l *Loader) CacheDir(cfg *Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	return cache.DefaultDir(l.appName)
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IO(err, filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(err, path)
	}
	return nil
}
