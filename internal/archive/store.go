package archive

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/thep200/github-user-crawler/internal/model"
)

// Resource is one archive table exposed under /api/<Path>.
type Resource struct {
	Path          string
	Table         string
	Order         string
	SearchColumns []string
	newRows       func() any
}

var Resources = []Resource{
	{
		Path:          "user-matches",
		Table:         (&model.UserMatch{}).TableName(),
		Order:         "id DESC",
		SearchColumns: []string{"login", "location", "company"},
		newRows:       func() any { return &[]model.UserMatch{} },
	},
	{
		Path:          "repo-matches",
		Table:         (&model.RepoMatch{}).TableName(),
		Order:         "id DESC",
		SearchColumns: []string{"keyword", "name", "username"},
		newRows:       func() any { return &[]model.RepoMatch{} },
	},
	{
		Path:          "profiles",
		Table:         (&model.Profile{}).TableName(),
		Order:         "followers DESC",
		SearchColumns: []string{"login", "location", "company"},
		newRows:       func() any { return &[]model.Profile{} },
	},
}

type Page struct {
	Number int
	Size   int
	Search string
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type Store interface {
	Find(ctx context.Context, res Resource, page Page) (rows any, total int64, err error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(ctx context.Context, res Resource, page Page) (any, int64, error) {
	query := s.db.WithContext(ctx).Table(res.Table)
	if page.Search != "" {
		where, args := searchClause(res.SearchColumns, page.Search)
		query = query.Where(where, args...)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := res.newRows()
	if err := query.Order(res.Order).Offset(page.Offset()).Limit(page.Size).Find(rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// searchClause matches search as a literal substring of any of columns.
func searchClause(columns []string, search string) (string, []any) {
	pattern := "%" + likeEscaper.Replace(search) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		conds = append(conds, column+" LIKE ?")
		args = append(args, pattern)
	}
	return strings.Join(conds, " OR "), args
}
