// Package config defines the engine configuration read once at startup.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/viant/unify/namepath"
)

// EnvPrefix for environment overrides, e.g. UNIFY_GENERATEDNAMESPACE
const EnvPrefix = "UNIFY"

// Config represents engine configuration; it is passed explicitly to the orchestrator and passes
type Config struct {
	GeneratedNamespace  string `mapstructure:"generatedNamespace" yaml:"generatedNamespace"`
	WrapperNamespace    string `mapstructure:"wrapperNamespace" yaml:"wrapperNamespace"`
	WrapperPrefix       string `mapstructure:"wrapperPrefix" yaml:"wrapperPrefix"`
	WrapperSuffix       string `mapstructure:"wrapperSuffix" yaml:"wrapperSuffix"`
	FactoryRenameSuffix string `mapstructure:"factoryRenameSuffix" yaml:"factoryRenameSuffix"`
	DatatypeNamespace   string `mapstructure:"datatypeNamespace" yaml:"datatypeNamespace"`
	ImplSegment         string `mapstructure:"implSegment" yaml:"implSegment"`
	ImplSuffix          string `mapstructure:"implSuffix" yaml:"implSuffix"`
	FactorySuffix       string `mapstructure:"factorySuffix" yaml:"factorySuffix"`
	ReflectiveBaseType  string `mapstructure:"reflectiveBaseType" yaml:"reflectiveBaseType"`
	Passes              Passes `mapstructure:"passes" yaml:"passes"`
	Workers             int    `mapstructure:"workers" yaml:"workers"` // 0 uses number of CPUs
}

// Passes toggles optional passes
type Passes struct {
	DefaultConstructors bool `mapstructure:"defaultConstructors" yaml:"defaultConstructors"`
	// ExposeMembers generates accessors for every instance field, not only the ones backed by a metamodel feature
	ExposeMembers bool `mapstructure:"exposeMembers" yaml:"exposeMembers"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		GeneratedNamespace:  "model",
		WrapperNamespace:    "unification",
		WrapperPrefix:       "Unified",
		FactoryRenameSuffix: "Gen",
		DatatypeNamespace:   "datatype",
		ImplSegment:         "impl",
		ImplSuffix:          "Impl",
		FactorySuffix:       "Factory",
		ReflectiveBaseType:  "EObject",
		Passes: Passes{
			DefaultConstructors: true,
			ExposeMembers:       true,
		},
	}
}

// Load reads configuration from a YAML file with UNIFY_ environment overrides; empty path uses defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("generatedNamespace", cfg.GeneratedNamespace)
	v.SetDefault("wrapperNamespace", cfg.WrapperNamespace)
	v.SetDefault("wrapperPrefix", cfg.WrapperPrefix)
	v.SetDefault("wrapperSuffix", cfg.WrapperSuffix)
	v.SetDefault("factoryRenameSuffix", cfg.FactoryRenameSuffix)
	v.SetDefault("datatypeNamespace", cfg.DatatypeNamespace)
	v.SetDefault("implSegment", cfg.ImplSegment)
	v.SetDefault("implSuffix", cfg.ImplSuffix)
	v.SetDefault("factorySuffix", cfg.FactorySuffix)
	v.SetDefault("reflectiveBaseType", cfg.ReflectiveBaseType)
	v.SetDefault("passes.defaultConstructors", cfg.Passes.DefaultConstructors)
	v.SetDefault("passes.exposeMembers", cfg.Passes.ExposeMembers)
	v.SetDefault("workers", cfg.Workers)
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks namespaces and naming conventions
func (c *Config) Validate() error {
	namespaces := map[string]string{
		"generatedNamespace": c.GeneratedNamespace,
		"wrapperNamespace":   c.WrapperNamespace,
	}
	if c.DatatypeNamespace != "" {
		namespaces["datatypeNamespace"] = c.DatatypeNamespace
	}
	for key, value := range namespaces {
		if !IsQualifiedName(value) {
			return fmt.Errorf("invalid %s: %q", key, value)
		}
	}
	if c.GeneratedNamespace == c.WrapperNamespace {
		return fmt.Errorf("generatedNamespace and wrapperNamespace must differ: %q", c.GeneratedNamespace)
	}
	if c.FactoryRenameSuffix == "" || !identifier.MatchString(c.FactoryRenameSuffix) {
		return fmt.Errorf("invalid factoryRenameSuffix: %q", c.FactoryRenameSuffix)
	}
	if c.WrapperPrefix == "" && c.WrapperSuffix == "" && c.WrapperNamespace == "" {
		return fmt.Errorf("wrapper naming is not configured")
	}
	if c.ImplSegment == "" || c.ImplSuffix == "" || c.FactorySuffix == "" {
		return fmt.Errorf("implSegment, implSuffix and factorySuffix are required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	return nil
}

// IsIdentifier returns true for a valid simple name
func IsIdentifier(name string) bool {
	return identifier.MatchString(name)
}

// IsQualifiedName returns true for a dotted sequence of identifiers
func IsQualifiedName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !identifier.MatchString(segment) {
			return false
		}
	}
	return true
}

// GeneratedPath returns generated-layer namespace
func (c *Config) GeneratedPath() namepath.Path {
	return namepath.Parse(c.GeneratedNamespace)
}

// WrapperPath returns wrapper namespace
func (c *Config) WrapperPath() namepath.Path {
	return namepath.Parse(c.WrapperNamespace)
}

// DatatypePath returns datatype namespace, zero when not configured
func (c *Config) DatatypePath() namepath.Path {
	return namepath.Parse(c.DatatypeNamespace)
}
