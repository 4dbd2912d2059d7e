package model

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_Text(t *testing.T) {
	t.Run("joins name and description", func(t *testing.T) {
		r := &Repo{Name: "blog", Description: Ptr("a django blog")}
		assert.Equal(t, "blog a django blog", r.Text())
	})

	t.Run("missing description is empty", func(t *testing.T) {
		r := &Repo{Name: "blog"}
		assert.Equal(t, "blog ", r.Text())
	})
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "The Octocat", (&User{Login: "octocat", Name: Ptr("The Octocat")}).DisplayName())
	assert.Equal(t, "octocat", (&User{Login: "octocat"}).DisplayName())
	assert.Equal(t, "octocat", (&User{Login: "octocat", Name: Ptr("")}).DisplayName())
}

func TestResultSet(t *testing.T) {
	rs := NewResultSet[string]()
	assert.Equal(t, 0, rs.Len())
	assert.Empty(t, rs.Items())

	assert.Equal(t, 1, rs.Append("b"))
	assert.Equal(t, 2, rs.Append("a"))
	assert.Equal(t, []string{"b", "a"}, rs.Items())
}

func TestRows_ValuesMatchColumns(t *testing.T) {
	user := &User{
		Login:       "octocat",
		HTMLURL:     Ptr("https://github.com/octocat"),
		Name:        Ptr("The Octocat"),
		Location:    Ptr("San Francisco"),
		Hireable:    Ptr(true),
		PublicRepos: Ptr(8),
		Followers:   Ptr(20),
	}
	repo := &Repo{
		Name:       "hello-world",
		HTMLURL:    Ptr("https://github.com/octocat/hello-world"),
		Language:   Ptr("Go"),
		OwnerLogin: "octocat",
	}

	um := UserMatchOf("run", user, repo)
	assert.Len(t, um.Values(), len(UserMatchColumns))
	assert.Equal(t, repo.HTMLURL, um.Values()[0])
	assert.Equal(t, user.Followers, um.Values()[9])

	rm := RepoMatchOf("run", "hello", repo)
	assert.Len(t, rm.Values(), len(RepoMatchColumns))
	assert.Equal(t, []any{"hello", "hello-world", "octocat", repo.HTMLURL, repo.Language}, rm.Values())

	p := ProfileOf("run", user)
	assert.Len(t, p.Values(), len(ProfileColumns))
	assert.Nil(t, p.Company)
}

func TestUserMatch_JSONOmitsDependencies(t *testing.T) {
	m, err := NewUserMatch(nil, nil, nil)
	require.NoError(t, err)
	m.Login = "octocat"

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "octocat", fields["login"])
	assert.NotContains(t, fields, "Config")
	assert.NotContains(t, fields, "ID")
	assert.Contains(t, fields, "company")
	assert.Nil(t, fields["company"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "ab", TruncateString("ab", 3))
	assert.Nil(t, TruncatePtr(nil, 3))
	assert.Equal(t, "abc", *TruncatePtr(Ptr("abcdef"), 3))

	t.Run("keeps multibyte runes whole", func(t *testing.T) {
		cut := TruncateString("a"+strings.Repeat("Ж", 300), 250)
		assert.True(t, utf8.ValidString(cut))
		assert.Equal(t, 250, utf8.RuneCountInString(cut))
		assert.Equal(t, "Моск", TruncateString("Москва", 4))
	})
}

var varcharSize = regexp.MustCompile(`type:varchar\((\d+)\)`)

// uniqueKeyBytes sums the utf8mb4 width of the columns in each unique index
// declared on the top-level fields of row.
func uniqueKeyBytes(t *testing.T, row any) map[string]int {
	t.Helper()
	widths := map[string]int{}
	typ := reflect.TypeOf(row)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("gorm")
		for _, setting := range strings.Split(tag, ";") {
			name, ok := strings.CutPrefix(setting, "uniqueIndex:")
			if !ok {
				continue
			}
			m := varcharSize.FindStringSubmatch(tag)
			require.NotNil(t, m, "indexed column %s needs a varchar size", typ.Field(i).Name)
			size, err := strconv.Atoi(m[1])
			require.NoError(t, err)
			widths[name] += size * 4
		}
	}
	return widths
}

func TestUniqueKeysFitInnoDB(t *testing.T) {
	const maxKeyBytes = 3072
	for _, row := range []any{UserMatch{}, RepoMatch{}, Profile{}} {
		widths := uniqueKeyBytes(t, row)
		require.NotEmpty(t, widths)
		for name, width := range widths {
			assert.LessOrEqual(t, width, maxKeyBytes, "index %s", name)
		}
	}
}
