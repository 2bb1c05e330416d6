// Package config loads desktop-tree settings from defaults, an optional YAML
// file, a .env file and DESKTOP_TREE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mj1618/desktop-tree/internal/annotate"
	"github.com/mj1618/desktop-tree/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g.
// DESKTOP_TREE_POOL_WORKERS.
const EnvPrefix = "DESKTOP_TREE"

// Config is the complete application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"   yaml:"logger"`
	Tree     TreeConfig     `mapstructure:"tree"     yaml:"tree"`
	Pool     PoolConfig     `mapstructure:"pool"     yaml:"pool"`
	Annotate AnnotateConfig `mapstructure:"annotate" yaml:"annotate"`
	Platform PlatformConfig `mapstructure:"platform" yaml:"platform"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level"        yaml:"level"`
	Format      string      `mapstructure:"format"       yaml:"format"`
	AddSource   bool        `mapstructure:"add_source"   yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file"     yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size"     yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups"  yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age"      yaml:"max_age"`
	Compress    bool        `mapstructure:"compress"     yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors"       yaml:"colors"`
}

// ColorConfig names the terminal color of each log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug"  yaml:"debug"`
	Info   string `mapstructure:"info"   yaml:"info"`
	Warn   string `mapstructure:"warn"   yaml:"warn"`
	Error  string `mapstructure:"error"  yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic"  yaml:"panic"`
	Fatal  string `mapstructure:"fatal"  yaml:"fatal"`
}

// TreeConfig drives classification and window selection.
type TreeConfig struct {
	InteractiveControlTypes []string      `mapstructure:"interactive_control_types" yaml:"interactive_control_types"`
	InformativeControlTypes []string      `mapstructure:"informative_control_types" yaml:"informative_control_types"`
	DefaultActions          []string      `mapstructure:"default_actions"           yaml:"default_actions"`
	AvoidedApps             []string      `mapstructure:"avoided_apps"              yaml:"avoided_apps"`
	VisibilityThreshold     int           `mapstructure:"visibility_threshold"      yaml:"visibility_threshold"`
	SettleDelay             time.Duration `mapstructure:"settle_delay"              yaml:"settle_delay"`
}

type PoolConfig struct {
	// Workers is the pool size; 0 means one per logical CPU.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

type AnnotateConfig struct {
	Scale        float64       `mapstructure:"scale"         yaml:"scale"`
	Padding      int           `mapstructure:"padding"       yaml:"padding"`
	FontSize     int           `mapstructure:"font_size"     yaml:"font_size"`
	FontPath     string        `mapstructure:"font_path"     yaml:"font_path"`
	Seed         int64         `mapstructure:"seed"          yaml:"seed"` // 0 picks a time-based seed
	CaptureDelay time.Duration `mapstructure:"capture_delay" yaml:"capture_delay"`
}

// PlatformConfig selects and tunes the desktop backend.
type PlatformConfig struct {
	// Scene replays a recorded desktop file instead of the live one.
	Scene string `mapstructure:"scene" yaml:"scene"`
	// Python is the interpreter used by the Windows accessibility bridge.
	Python        string        `mapstructure:"python"         yaml:"python"`
	BridgeTimeout time.Duration `mapstructure:"bridge_timeout" yaml:"bridge_timeout"`
}

type ServerConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Port      int    `mapstructure:"port"      yaml:"port"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "desktop-tree")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Tree --
	v.SetDefault("tree.interactive_control_types", model.DefaultInteractiveControlTypes)
	v.SetDefault("tree.informative_control_types", model.DefaultInformativeControlTypes)
	v.SetDefault("tree.default_actions", model.DefaultActions)
	v.SetDefault("tree.avoided_apps", model.DefaultAvoidedApps)
	v.SetDefault("tree.visibility_threshold", 0)
	v.SetDefault("tree.settle_delay", "150ms")

	// -- Pool --
	v.SetDefault("pool.workers", 0)

	// -- Annotate --
	v.SetDefault("annotate.scale", annotate.DefaultScale)
	v.SetDefault("annotate.padding", annotate.DefaultPadding)
	v.SetDefault("annotate.font_size", annotate.DefaultFontSize)
	v.SetDefault("annotate.font_path", "")
	v.SetDefault("annotate.seed", 0)
	v.SetDefault("annotate.capture_delay", "250ms")

	// -- Platform --
	v.SetDefault("platform.scene", "")
	v.SetDefault("platform.python", "python")
	v.SetDefault("platform.bridge_timeout", "30s")

	// -- Server --
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.port", 8080)
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// BindEnv makes DESKTOP_TREE_<SECTION>_<KEY> override section.key on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the optional .env file, applies defaults and environment
// overrides to v, merges the config file at path when it is set, and
// returns the validated result.
func Load(v *viper.Viper, path string) (*Config, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	SetDefaults(v)
	BindEnv(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper decodes and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Pool.Workers < 0 {
		return errors.New("pool.workers must not be negative")
	}
	if c.Tree.VisibilityThreshold < 0 {
		return errors.New("tree.visibility_threshold must not be negative")
	}
	if c.Tree.SettleDelay < 0 {
		return errors.New("tree.settle_delay must not be negative")
	}
	if len(c.Tree.InteractiveControlTypes) == 0 {
		return errors.New("tree.interactive_control_types must not be empty")
	}
	if c.Annotate.Scale <= 0 || c.Annotate.Scale > 1 {
		return fmt.Errorf("annotate.scale must be in (0, 1], got %v", c.Annotate.Scale)
	}
	if c.Annotate.Padding < 0 {
		return errors.New("annotate.padding must not be negative")
	}
	if c.Annotate.FontSize <= 0 {
		return errors.New("annotate.font_size must be positive")
	}
	if c.Annotate.CaptureDelay < 0 {
		return errors.New("annotate.capture_delay must not be negative")
	}
	switch c.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("server.transport must be stdio or http, got %q", c.Server.Transport)
	}
	if c.Server.Transport == "http" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}
