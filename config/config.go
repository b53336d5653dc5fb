package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BLOG_API_BASE_URL.
const EnvPrefix = "BLOG"

var (
	config *Config
	path   string
	mu     sync.Mutex
)

// Config represents the client configuration.
type Config struct {
	AppName  string
	API      *API
	Identity *Identity
	Store    *Store
	Upload   *Upload
	Logger   *Logger
	Observes *Observes
	Viper    *viper.Viper
}

// SetPath sets the file used by GetConfig. An empty path searches the
// default locations.
func SetPath(p string) {
	mu.Lock()
	defer mu.Unlock()
	path = p
	config = nil
}

// GetConfig returns the process configuration, loading it on first use.
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		cfg, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
		config = cfg
	}
	return config, nil
}

// LoadConfig loads the configuration from configPath, or from config.yaml
// in $HOME/.blog or the working directory. A missing file is only an error
// when configPath is given; environment variables alone are enough.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.blog")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:  v.GetString("app_name"),
		API:      getAPIConfig(v),
		Identity: getIdentityConfig(v),
		Store:    getStoreConfig(v),
		Upload:   getUploadConfig(v),
		Logger:   getLoggerConfig(v),
		Observes: getObservesConfig(v),
		Viper:    v,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "blog")
	v.SetDefault("identity.registration", "backend")
	v.SetDefault("store.driver", "file")
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if c.API == nil || c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute url", c.API.BaseURL)
	}
	switch c.Identity.Registration {
	case "backend", "provider":
	default:
		return fmt.Errorf("identity.registration must be backend or provider, got %q", c.Identity.Registration)
	}
	return nil
}
