package model

import (
	"fmt"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/pkg/db"
	"github.com/thep200/github-user-crawler/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserMatchColumns is the export schema of user mode.
var UserMatchColumns = []string{
	"repo_html_url", "repo_language", "user_html_url", "name", "company",
	"location", "email", "hireable", "public_repos", "followers",
}

// UserMatch is one accepted user together with the repository that matched.
type UserMatch struct {
	Model
	RunID        string  `json:"run_id" gorm:"column:run_id;type:varchar(36);not null;uniqueIndex:idx_user_matches_run_login"`
	Login        string  `json:"login" gorm:"column:login;type:varchar(39);not null;uniqueIndex:idx_user_matches_run_login"`
	RepoHTMLURL  *string `json:"repo_html_url" gorm:"column:repo_html_url;type:varchar(255)"`
	RepoLanguage *string `json:"repo_language" gorm:"column:repo_language;type:varchar(255)"`
	UserHTMLURL  *string `json:"user_html_url" gorm:"column:user_html_url;type:varchar(255)"`
	Name         *string `json:"name" gorm:"column:name;type:varchar(255)"`
	Company      *string `json:"company" gorm:"column:company;type:varchar(255)"`
	Location     *string `json:"location" gorm:"column:location;type:varchar(255)"`
	Email        *string `json:"email" gorm:"column:email;type:varchar(255)"`
	Hireable     *bool   `json:"hireable" gorm:"column:hireable"`
	PublicRepos  *int    `json:"public_repos" gorm:"column:public_repos"`
	Followers    *int    `json:"followers" gorm:"column:followers"`
}

func NewUserMatch(config *cfg.Config, logger log.Logger, db *db.Mysql) (*UserMatch, error) {
	return &UserMatch{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}, nil
}

// UserMatchOf builds the row for user accepted through repo.
func UserMatchOf(runID string, user *User, repo *Repo) UserMatch {
	return UserMatch{
		RunID:        runID,
		Login:        user.Login,
		RepoHTMLURL:  repo.HTMLURL,
		RepoLanguage: repo.Language,
		UserHTMLURL:  user.HTMLURL,
		Name:         user.Name,
		Company:      user.Company,
		Location:     user.Location,
		Email:        user.Email,
		Hireable:     user.Hireable,
		PublicRepos:  user.PublicRepos,
		Followers:    user.Followers,
	}
}

func (m *UserMatch) TableName() string {
	return "user_matches"
}

// Values returns the cells in UserMatchColumns order.
func (m *UserMatch) Values() []any {
	return []any{
		m.RepoHTMLURL, m.RepoLanguage, m.UserHTMLURL, m.Name, m.Company,
		m.Location, m.Email, m.Hireable, m.PublicRepos, m.Followers,
	}
}

func (m *UserMatch) CreateBatch(rows []UserMatch) error {
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
			Columns: []clause.Column{{Name: "run_id"}, {Name: "login"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"repo_html_url", "repo_language", "name", "company", "location",
				"email", "hireable", "public_repos", "followers", "updated_at",
			}),
		}).CreateInBatches(rows, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create user matches: %w", result.Error)
		}

		return nil
	})
}
