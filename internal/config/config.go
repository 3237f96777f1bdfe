// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mwiater/tracesplit/internal/mapping"
)

// EnvPrefix prefixes environment variables that override config keys, e.g.
// TRACESPLIT_MAPPING=perception.
const EnvPrefix = "TRACESPLIT"

// Config holds the settings of one tracesplit invocation.
type Config struct {
	Root               string                     `mapstructure:"root"`
	Mapping            string                     `mapstructure:"mapping"`
	SubMapping         string                     `mapstructure:"submapping"`
	Composite          string                     `mapstructure:"composite"`
	SkipExisting       bool                       `mapstructure:"skip_existing"`
	WriteEmptySubTasks bool                       `mapstructure:"write_empty_subtasks"`
	DryRun             bool                       `mapstructure:"dry_run"`
	Column             string                     `mapstructure:"column"`
	Debug              bool                       `mapstructure:"debug"`
	LogFile            string                     `mapstructure:"log_file"`
	Mappings           map[string][]mapping.Entry `mapstructure:"mappings"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("mapping", mapping.General)
	v.SetDefault("submapping", mapping.Perception)
	v.SetDefault("composite", "perception")
	v.SetDefault("skip_existing", true)
	v.SetDefault("write_empty_subtasks", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("column", "latency")
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "debug.log")
}

// Load reads the config file named by the "config" key, when set, and
// unmarshals every key into a Config. Values from bound flags and
// TRACESPLIT_* environment variables take precedence over the file.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("could not read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config: %w", err)
	}
	if cfg.Mapping == "" {
		return cfg, errors.New("mapping must not be empty")
	}
	return cfg, nil
}

// Registry builds the mapping registry from the built-ins and the custom
// tables in cfg.
func (c Config) Registry() (*mapping.Registry, error) {
	return mapping.NewRegistry(c.Mappings)
}

// Resolve looks up the active and sub-task mappings named in cfg.
func (c Config) Resolve() (tasks, sub mapping.Mapping, err error) {
	reg, err := c.Registry()
	if err != nil {
		return tasks, sub, err
	}
	if tasks, err = reg.Lookup(c.Mapping); err != nil {
		return tasks, sub, err
	}
	if c.Composite == "" {
		return tasks, sub, nil
	}
	if sub, err = reg.Lookup(c.SubMapping); err != nil {
		return tasks, sub, err
	}
	if !tasks.HasLabel(c.Composite) {
		// Composite only applies to mappings that produce it.
		return tasks, mapping.Mapping{}, nil
	}
	if sub.HasLabel(c.Composite) {
		// The sub-task file would overwrite the full aggregate table.
		return tasks, sub, fmt.Errorf("sub-task mapping %q also produces composite label %q", sub.Name, c.Composite)
	}
	return tasks, sub, nil
}
