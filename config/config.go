// ABOUTME: Layered runtime configuration: flags, LAUNCHDASH_* environment, an optional YAML file, then variant defaults.
// ABOUTME: The two deployment variants differ only in their default address and dataset source.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/2389-research/launchdash/dataset"
	"github.com/2389-research/launchdash/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the config reads.
const EnvPrefix = "LAUNCHDASH"

// EnvConfigFile names an explicit config file when --config is not given.
const EnvConfigFile = EnvPrefix + "_CONFIG"

// Deployment variants.
const (
	VariantLocal  = "local"
	VariantDeploy = "deploy"
)

// Dataset sources used when none is configured.
const (
	DefaultLocalSource  = "spacex_launch_dash.csv"
	DefaultDeploySource = "https://cf-courses-data.s3.us.cloud-object-storage.appdomain.cloud/IBM-DS0321EN-SkillsNetwork/datasets/spacex_launch_dash.csv"
)

// DefaultCacheTTL is how long a rendered figure stays cached.
const DefaultCacheTTL = 10 * time.Minute

// Keys shared by flags, environment variables, and the config file.
const (
	KeySource       = "source"
	KeyVariant      = "variant"
	KeyHost         = "host"
	KeyPort         = "port"
	KeyLogLevel     = "log-level"
	KeyLogFormat    = "log-format"
	KeyCacheTTL     = "cache-ttl"
	KeyFetchTimeout = "fetch-timeout"
	KeyAbout        = "about"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	Source       string        `mapstructure:"source" yaml:"source"`
	Variant      string        `mapstructure:"variant" yaml:"variant"`
	Host         string        `mapstructure:"host" yaml:"host"`
	Port         int           `mapstructure:"port" yaml:"port"`
	LogLevel     string        `mapstructure:"log-level" yaml:"log-level"`
	LogFormat    string        `mapstructure:"log-format" yaml:"log-format"`
	CacheTTL     time.Duration `mapstructure:"cache-ttl" yaml:"cache-ttl"`
	FetchTimeout time.Duration `mapstructure:"fetch-timeout" yaml:"fetch-timeout"`
	// About is an optional path to a markdown file shown on the dashboard.
	About string `mapstructure:"about" yaml:"about"`
}

// Defaults returns the configuration a variant starts from. Unknown
// variants get the local defaults and are rejected later by Validate.
func Defaults(variant string) Config {
	cfg := Config{
		Source:       DefaultLocalSource,
		Variant:      variant,
		Host:         "127.0.0.1",
		Port:         8050,
		LogLevel:     "info",
		LogFormat:    logging.FormatConsole,
		CacheTTL:     DefaultCacheTTL,
		FetchTimeout: dataset.DefaultFetchTimeout,
	}
	if variant == VariantDeploy {
		cfg.Source = DefaultDeploySource
		cfg.Host = "0.0.0.0"
		cfg.Port = 10000
		cfg.LogFormat = logging.FormatJSON
	}
	return cfg
}

// RegisterFlags adds the configuration flags to fs. Flag defaults are left
// empty so that variant defaults apply when a flag is not given.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeySource, "", "dataset source: CSV path, http(s) URL, or sqlite:// path")
	fs.String(KeyVariant, VariantLocal, "deployment variant: local or deploy")
	fs.String(KeyHost, "", "listen host (variant default when empty)")
	fs.Int(KeyPort, 0, "listen port (variant default when zero)")
	fs.String(KeyLogLevel, "", "log level: debug, info, warn, error")
	fs.String(KeyLogFormat, "", "log format: console or json")
	fs.Duration(KeyCacheTTL, 0, "how long rendered figures stay cached")
	fs.Duration(KeyFetchTimeout, 0, "timeout for remote dataset fetches")
	fs.String(KeyAbout, "", "markdown file rendered below the charts")
}

// NewViper returns a viper instance reading LAUNCHDASH_* variables, the
// flags in fs (which may be nil), and configFile. An empty configFile falls
// back to $LAUNCHDASH_CONFIG, then to an optional launchdash.yaml in the
// working directory.
func NewViper(fs *pflag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}
	strict := configFile != ""
	if strict {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("launchdash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || strict {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load resolves a Config from v, filling anything unset from the selected
// variant's defaults.
func Load(v *viper.Viper) (Config, error) {
	variant := strings.TrimSpace(v.GetString(KeyVariant))
	if variant == "" {
		variant = VariantLocal
	}
	def := Defaults(variant)
	v.SetDefault(KeyVariant, variant)
	v.SetDefault(KeySource, def.Source)
	v.SetDefault(KeyHost, def.Host)
	v.SetDefault(KeyPort, def.Port)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeyCacheTTL, def.CacheTTL)
	v.SetDefault(KeyFetchTimeout, def.FetchTimeout)
	v.SetDefault(KeyAbout, def.About)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	// Zero values from unchanged flags mean "use the default".
	if cfg.Host == "" {
		cfg.Host = def.Host
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.Source == "" {
		cfg.Source = def.Source
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = def.LogFormat
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantLocal, VariantDeploy:
	default:
		return fmt.Errorf("unknown variant %q (expected %s or %s)", c.Variant, VariantLocal, VariantDeploy)
	}
	if strings.TrimSpace(c.Source) == "" {
		return errors.New("dataset source must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache-ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch-timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
