package cfg

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultConfigPath = "cfg/yaml"
	DefaultConfigName = "mode"
	EnvPrefix         = "GHCRAWLER"
)

var defaults = map[string]any{
	"app.name":                       "github-user-crawler",
	"app.version":                    "0.1.0",
	"log.driver":                     "console",
	"log.level":                      "info",
	"mysql.host":                     "127.0.0.1",
	"mysql.port":                     "3306",
	"mysql.username":                 "root",
	"mysql.password":                 "",
	"mysql.database":                 "github_crawler",
	"mysql.max_idle_connection":      10,
	"mysql.max_open_connection":      100,
	"mysql.max_life_time_connection": 3600,
	"kafka.enabled":                  false,
	"kafka.brokers":                  []string{},
	"kafka.topic":                    "github-matches",
	"kafka.group_id":                 "github-matches-archive",
	"github_api.access_token":        "",
	"github_api.access_token_path":   "",
	"github_api.api_url":             "",
	"github_api.probe_repo":          "google/go-github",
	"github_api.per_page":            100,
	"github_api.requests_per_second": 1.2,
	"github_api.timeout_seconds":     30,
	"search.mode":                    ModeUser,
	"search.query":                   "",
	"search.keywords":                []string{},
	"search.max_count":               0,
	"search.locations":               []string{},
	"search.skip_failed_profiles":    false,
	"export.users_file":              "",
	"export.repos_file":              "",
	"export.hyperlink_urls":          false,
}

type ViperLoader struct {
	v                     *viper.Viper
	configFile            string
	watch                 bool
	mu                    sync.RWMutex
	current               *Config
	configChangeCallbacks []func(*Config)
}

type ViperOption func(*ViperLoader) error

// WithConfigFile reads an explicit file instead of cfg/yaml/mode.yaml.
func WithConfigFile(file string) ViperOption {
	return func(yl *ViperLoader) error {
		yl.configFile = file
		return nil
	}
}

// WithFlags binds config keys to command line flags. Keys are viper keys
// ("search.max_count"), values are flag names ("max-count").
func WithFlags(fs *pflag.FlagSet, bindings map[string]string) ViperOption {
	return func(yl *ViperLoader) error {
		for key, name := range bindings {
			flag := fs.Lookup(name)
			if flag == nil {
				return fmt.Errorf("[ERROR][CONFIG] unknown flag %q for key %q", name, key)
			}
			if err := yl.v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("[ERROR][CONFIG] failed to bind flag %q: %w", name, err)
			}
		}
		return nil
	}
}

// WithWatch reloads the config when the file changes on disk.
func WithWatch(watch bool) ViperOption {
	return func(yl *ViperLoader) error {
		yl.watch = watch
		return nil
	}
}

func NewViperLoader(opts ...ViperOption) (*ViperLoader, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github_api.access_token", EnvPrefix+"_GITHUB_API_ACCESS_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("[ERROR][CONFIG] failed to bind env: %w", err)
	}

	yl := &ViperLoader{
		v:                     v,
		configChangeCallbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		if err := opt(yl); err != nil {
			return nil, err
		}
	}
	return yl, nil
}

func (yl *ViperLoader) Load() (*Config, error) {
	if err := yl.loadConfig(); err != nil {
		return nil, err
	}

	if yl.IsWatchChange() && yl.v.ConfigFileUsed() != "" {
		yl.v.OnConfigChange(func(e fsnotify.Event) {
			fmt.Printf("[INFO][CONFIG] Config file changed: %s\n", e.Name)
			if errReload := yl.reloadConfig(); errReload != nil {
				fmt.Printf("[ERROR][CONFIG] Failed to reload config: %v\n", errReload)
			}
		})
		yl.v.WatchConfig()
	}

	yl.mu.RLock()
	defer yl.mu.RUnlock()
	return yl.current, nil
}

func (yl *ViperLoader) IsWatchChange() bool {
	return yl.watch
}

func (yl *ViperLoader) RegisterConfigChangeCallback(callback func(*Config)) {
	yl.mu.Lock()
	yl.configChangeCallbacks = append(yl.configChangeCallbacks, callback)
	yl.mu.Unlock()
}

func (yl *ViperLoader) loadConfig() error {
	if yl.configFile != "" {
		yl.v.SetConfigFile(yl.configFile)
	} else {
		yl.v.AddConfigPath(DefaultConfigPath)
		yl.v.SetConfigName(DefaultConfigName)
		yl.v.SetConfigType("yaml")
	}

	if err := yl.v.ReadInConfig(); err != nil {
		// Defaults, env and flags are enough to run without a file.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("[ERROR][CONFIG] failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := yl.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to unmarshal config: %w", err)
	}

	yl.mu.Lock()
	yl.current = cfg
	yl.mu.Unlock()

	return nil
}

func (yl *ViperLoader) reloadConfig() error {
	cfg := &Config{}
	if err := yl.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] failed to unmarshal config during reload: %w", err)
	}

	yl.mu.Lock()
	yl.current = cfg

	// Notify all registered callbacks
	callbacks := make([]func(*Config), len(yl.configChangeCallbacks))
	copy(callbacks, yl.configChangeCallbacks)
	yl.mu.Unlock()
	for _, callback := range callbacks {
		go callback(cfg)
	}

	fmt.Println("[INFO][CONFIG] Configuration reloaded successfully")
	return nil
}
