package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thep200/github-user-crawler/cfg"
)

func TestMysql_DSN(t *testing.T) {
	m, err := NewMysql(&cfg.Config{Mysql: cfg.Mysql{
		Host:     "db.local",
		Port:     "3307",
		Username: "crawler",
		Password: "secret",
		Database: "github_crawler",
	}})
	assert.NoError(t, err)

	dsn := m.DSN()
	assert.Contains(t, dsn, "crawler:secret@tcp(db.local:3307)/github_crawler")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestMysql_CloseWithoutOpen(t *testing.T) {
	m, _ := NewMysql(&cfg.Config{})
	assert.NoError(t, m.Close())
}
