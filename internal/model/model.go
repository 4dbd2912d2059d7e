package model

import (
	"time"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/pkg/db"
	"github.com/thep200/github-user-crawler/pkg/log"
)

type Model struct {
	Config    *cfg.Config `json:"-" gorm:"-"`
	Logger    log.Logger  `json:"-" gorm:"-"`
	Mysql     *db.Mysql   `json:"-" gorm:"-"`
	ID        uint        `json:"-" gorm:"primaryKey"`
	CreatedAt time.Time   `json:"-"`
	UpdatedAt time.Time   `json:"-"`
}
