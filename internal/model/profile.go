package model

import (
	"fmt"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/pkg/db"
	"github.com/thep200/github-user-crawler/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileColumns is the users file schema of repo mode.
var ProfileColumns = []string{
	"html_url", "name", "company", "location", "email",
	"hireable", "public_repos", "followers",
}

// Profile is an enriched user. Profiles are keyed by login and the latest
// fetch wins in the archive.
type Profile struct {
	Model
	RunID       string  `json:"run_id" gorm:"column:run_id;type:varchar(36);not null"`
	Login       string  `json:"login" gorm:"column:login;type:varchar(39);not null;uniqueIndex:idx_profiles_login"`
	HTMLURL     *string `json:"html_url" gorm:"column:html_url;type:varchar(255)"`
	Name        *string `json:"name" gorm:"column:name;type:varchar(255)"`
	Company     *string `json:"company" gorm:"column:company;type:varchar(255)"`
	Location    *string `json:"location" gorm:"column:location;type:varchar(255)"`
	Email       *string `json:"email" gorm:"column:email;type:varchar(255)"`
	Hireable    *bool   `json:"hireable" gorm:"column:hireable"`
	PublicRepos *int    `json:"public_repos" gorm:"column:public_repos"`
	Followers   *int    `json:"followers" gorm:"column:followers"`
}

func NewProfile(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Profile, error) {
	return &Profile{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}, nil
}

func ProfileOf(runID string, user *User) Profile {
	return Profile{
		RunID:       runID,
		Login:       user.Login,
		HTMLURL:     user.HTMLURL,
		Name:        user.Name,
		Company:     user.Company,
		Location:    user.Location,
		Email:       user.Email,
		Hireable:    user.Hireable,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
	}
}

func (m *Profile) TableName() string {
	return "profiles"
}

// Values returns the cells in ProfileColumns order.
func (m *Profile) Values() []any {
	return []any{
		m.HTMLURL, m.Name, m.Company, m.Location, m.Email,
		m.Hireable, m.PublicRepos, m.Followers,
	}
}

func (m *Profile) CreateBatch(rows []Profile) error {
	db, err := m.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	for i := range rows {
		rows[i].Name = TruncatePtr(rows[i].Name, 250)
		rows[i].Company = TruncatePtr(rows[i].Company, 250)
		rows[i].Location = TruncatePtr(rows[i].Location, 250)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "login"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"run_id", "html_url", "name", "company", "location", "email",
				"hireable", "public_repos", "followers", "updated_at",
			}),
		}).CreateInBatches(rows, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create profiles: %w", result.Error)
		}

		return nil
	})
}
