package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thep200/github-user-crawler/internal/model"
	"github.com/thep200/github-user-crawler/pkg/log"
)

type fakeStore struct {
	rows  any
	total int64
	err   error
	res   Resource
	page  Page
}

func (s *fakeStore) Find(_ context.Context, res Resource, page Page) (any, int64, error) {
	s.res, s.page = res, page
	return s.rows, s.total, s.err
}

func newTestMux(t *testing.T, store Store) *http.ServeMux {
	t.Helper()
	logger, err := log.NewCslLogger()
	require.NoError(t, err)
	logger.SetOutput(io.Discard)

	mux := http.NewServeMux()
	NewHandler(logger, store).RegisterRoutes(mux)
	return mux
}

func TestHandler_List(t *testing.T) {
	store := &fakeStore{
		rows:  &[]model.Profile{{Login: "octocat", Followers: model.Ptr(20)}},
		total: 51,
	}
	mux := newTestMux(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles?page=2&pageSize=25&search=Moscow", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "profiles", store.res.Table)
	assert.Equal(t, Page{Number: 2, Size: 25, Search: "Moscow"}, store.page)
	assert.Equal(t, 25, store.page.Offset())

	var body struct {
		Items      []map[string]any `json:"items"`
		Pagination pagination       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "octocat", body.Items[0]["login"])
	assert.Equal(t, pagination{Page: 2, PageSize: 25, TotalCount: 51, TotalPages: 3}, body.Pagination)
}

func TestHandler_Errors(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		mux := newTestMux(t, &fakeStore{err: errors.New("db down")})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user-matches", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("read only", func(t *testing.T) {
		mux := newTestMux(t, &fakeStore{})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/repo-matches", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  Page
	}{
		{"", Page{Number: 1, Size: defaultPageSize}},
		{"page=0&pageSize=500", Page{Number: 1, Size: defaultPageSize}},
		{"page=x&pageSize=-1", Page{Number: 1, Size: defaultPageSize}},
		{"page=3&pageSize=100&search=dj", Page{Number: 3, Size: 100, Search: "dj"}},
		{"page=9223372036854775807&pageSize=100", Page{Number: maxPage, Size: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/profiles?"+tt.query, nil)
			assert.Equal(t, tt.want, parsePage(r))
		})
	}
}

func TestSearchClause(t *testing.T) {
	where, args := searchClause([]string{"login", "location"}, "mos")
	assert.Equal(t, "login LIKE ? OR location LIKE ?", where)
	assert.Equal(t, []any{"%mos%", "%mos%"}, args)

	_, args = searchClause([]string{"login"}, `50%_off\`)
	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}

func TestPage_OffsetAtMaxPage(t *testing.T) {
	page := Page{Number: maxPage, Size: maxPageSize}
	assert.Positive(t, page.Offset())
}

func TestNewServer_RequiresAddr(t *testing.T) {
	_, err := NewServer(nil, nil, nil, "")
	assert.Error(t, err)
}
