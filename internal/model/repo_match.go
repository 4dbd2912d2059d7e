package model

import (
	"fmt"

	"github.com/thep200/github-user-crawler/cfg"
	"github.com/thep200/github-user-crawler/pkg/db"
	"github.com/thep200/github-user-crawler/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepoMatchColumns is the repos file schema of repo mode.
var RepoMatchColumns = []string{"keyword", "name", "username", "html_url", "language"}

// RepoMatch is one repository returned for a keyword search. Name and
// Username are sized to GitHub's limits (100 and 39 characters) so the
// unique key fits InnoDB's 3072 byte index limit under utf8mb4.
type RepoMatch struct {
	Model
	RunID    string  `json:"run_id" gorm:"column:run_id;type:varchar(36);not null;uniqueIndex:idx_repo_matches_key"`
	Keyword  string  `json:"keyword" gorm:"column:keyword;type:varchar(255);not null;uniqueIndex:idx_repo_matches_key"`
	Name     string  `json:"name" gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_repo_matches_key"`
	Username string  `json:"username" gorm:"column:username;type:varchar(39);not null;uniqueIndex:idx_repo_matches_key"`
	HTMLURL  *string `json:"html_url" gorm:"column:html_url;type:varchar(255)"`
	Language *string `json:"language" gorm:"column:language;type:varchar(255)"`
}

func NewRepoMatch(config *cfg.Config, logger log.Logger, db *db.Mysql) (*RepoMatch, error) {
	return &RepoMatch{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}, nil
}

func RepoMatchOf(runID, keyword string, repo *Repo) RepoMatch {
	return RepoMatch{
		RunID:    runID,
		Keyword:  keyword,
		Name:     repo.Name,
		Username: repo.OwnerLogin,
		HTMLURL:  repo.HTMLURL,
		Language: repo.Language,
	}
}

func (m *RepoMatch) TableName() string {
	return "repo_matches"
}

// Values returns the cells in RepoMatchColumns order.
func (m *RepoMatch) Values() []any {
	return []any{m.Keyword, m.Name, m.Username, m.HTMLURL, m.Language}
}

func (m *RepoMatch) CreateBatch(rows []RepoMatch) error {
	db, err := m.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	for i := range rows {
		rows[i].Keyword = TruncateString(rows[i].Keyword, 255)
		rows[i].Name = TruncateString(rows[i].Name, 100)
		rows[i].Username = TruncateString(rows[i].Username, 39)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_id"}, {Name: "keyword"}, {Name: "name"}, {Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"html_url", "language", "updated_at"}),
		}).CreateInBatches(rows, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create repo matches: %w", result.Error)
		}

		return nil
	})
}
