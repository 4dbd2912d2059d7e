package cfg

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	ModeUser = "user"
	ModeRepo = "repo"
)

type (
	App struct {
		Name    string `mapstructure:"name"`
		Version string `mapstructure:"version"`
	}

	Log struct {
		Driver string `mapstructure:"driver" validate:"omitempty,oneof=console zap"`
		Level  string `mapstructure:"level"`
	}

	Mysql struct {
		Host                  string `mapstructure:"host"`
		Port                  string `mapstructure:"port"`
		Username              string `mapstructure:"username"`
		Password              string `mapstructure:"password"`
		Database              string `mapstructure:"database"`
		MaxIdleConnection     int    `mapstructure:"max_idle_connection"`
		MaxOpenConnection     int    `mapstructure:"max_open_connection"`
		MaxLifeTimeConnection int    `mapstructure:"max_life_time_connection"`
	}

	Kafka struct {
		Enabled bool     `mapstructure:"enabled"`
		Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
		Topic   string   `mapstructure:"topic" validate:"required_if=Enabled true"`
		GroupID string   `mapstructure:"group_id"`
	}

	GithubApi struct {
		AccessToken       string  `mapstructure:"access_token"`
		AccessTokenPath   string  `mapstructure:"access_token_path"`
		ApiUrl            string  `mapstructure:"api_url"`
		ProbeRepo         string  `mapstructure:"probe_repo"`
		PerPage           int     `mapstructure:"per_page" validate:"gte=0,lte=100"`
		RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
		TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	}

	// Search holds the query shape of a run. Query is passed to the search
	// API verbatim.
	Search struct {
		Mode               string   `mapstructure:"mode" validate:"oneof=user repo"`
		Query              string   `mapstructure:"query"`
		Keywords           []string `mapstructure:"keywords" validate:"min=1,dive,required"`
		MaxCount           int      `mapstructure:"max_count" validate:"gt=0"`
		Locations          []string `mapstructure:"locations"`
		SkipFailedProfiles bool     `mapstructure:"skip_failed_profiles"`
	}

	Export struct {
		UsersFile     string `mapstructure:"users_file" validate:"required"`
		ReposFile     string `mapstructure:"repos_file"`
		HyperlinkURLs bool   `mapstructure:"hyperlink_urls"`
	}
)

type Config struct {
	App       App       `mapstructure:"app"`
	Log       Log       `mapstructure:"log"`
	Mysql     Mysql     `mapstructure:"mysql"`
	Kafka     Kafka     `mapstructure:"kafka"`
	GithubApi GithubApi `mapstructure:"github_api"`
	Search    Search    `mapstructure:"search"`
	Export    Export    `mapstructure:"export"`
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("[ERROR][CONFIG] invalid config: %w", err)
	}
	if c.Search.Mode == ModeRepo && c.Export.ReposFile == "" {
		return fmt.Errorf("[ERROR][CONFIG] invalid config: export.repos_file is required in %s mode", ModeRepo)
	}
	return nil
}
