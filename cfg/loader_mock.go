package cfg

type MockLoader struct {
	Config *Config
}

func NewMockLoader() (*MockLoader, error) {
	return &MockLoader{}, nil
}

func (ml *MockLoader) Load() (*Config, error) {
	if ml.Config != nil {
		return ml.Config, nil
	}

	return &Config{
		// App
		App: App{
			Name:    "github-user-crawler",
			Version: "0.0.1",
		},

		// Log
		Log: Log{
			Driver: "console",
			Level:  "info",
		},

		// Mysql
		Mysql: Mysql{
			Host:                  "127.0.0.1",
			Password:              "root",
			Username:              "root",
			Port:                  "3306",
			Database:              "github_crawler",
			MaxIdleConnection:     10,
			MaxOpenConnection:     100,
			MaxLifeTimeConnection: 3600,
		},

		// Kafka
		Kafka: Kafka{
			Enabled: false,
			Brokers: []string{"127.0.0.1:9092"},
			Topic:   "github-matches",
			GroupID: "github-matches-archive",
		},

		// GithubApi
		GithubApi: GithubApi{
			AccessToken:       "",
			ProbeRepo:         "google/go-github",
			PerPage:           100,
			RequestsPerSecond: 1.2,
			TimeoutSeconds:    30,
		},

		// Search
		Search: Search{
			Mode:     ModeUser,
			Query:    "language:python location:Moscow",
			Keywords: []string{"django", "flask"},
			MaxCount: 5,
		},

		// Export
		Export: Export{
			UsersFile: "data/users.xlsx",
			ReposFile: "data/repos.xlsx",
		},
	}, nil
}
