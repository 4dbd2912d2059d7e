package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thep200/github-user-crawler/internal/crawler"
	"github.com/thep200/github-user-crawler/internal/credential"
	"github.com/thep200/github-user-crawler/internal/export"
)

// writeConfig writes a config file pointing the GitHub client at apiURL.
func writeConfig(t *testing.T, apiURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mode.yaml")
	content := fmt.Sprintf(`log:
  level: emergency
github_api:
  api_url: %q
  probe_repo: google/go-github
  requests_per_second: 0
search:
  query: "language:python"
`, apiURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GHCRAWLER_GITHUB_API_ACCESS_TOKEN", "")
	t.Setenv("GHCRAWLER_GITHUB_API_ACCESS_TOKEN_PATH", "")
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

// fakeGitHub answers the credential check with status and counts searches.
func fakeGitHub(t *testing.T, status int) (*httptest.Server, *int32) {
	t.Helper()
	var searches int32
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/google/go-github", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, `{"name":"go-github","owner":{"login":"google"}}`)
	})
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&searches, 1)
		fmt.Fprint(w, `{"total_count":0,"items":[]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &searches
}

func TestLoadConfig_Flags(t *testing.T) {
	clearTokenEnv(t)
	dir := t.TempDir()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", writeConfig(t, "http://127.0.0.1"),
		"--mode", "repo",
		"--keyword", "machine learning",
		"--keyword", "ml",
		"--location", "Moscow, Russia",
		"--max-count", "3",
		"--output", filepath.Join(dir, "users.csv"),
		"--repos-output", filepath.Join(dir, "repos.csv"),
		"--token", "ghp_flag",
		"--hyperlink",
	}))

	config, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "repo", config.Search.Mode)
	assert.Equal(t, []string{"machine learning", "ml"}, config.Search.Keywords)
	assert.Equal(t, []string{"Moscow, Russia"}, config.Search.Locations)
	assert.Equal(t, 3, config.Search.MaxCount)
	assert.Equal(t, "language:python", config.Search.Query)
	assert.Equal(t, "ghp_flag", config.GithubApi.AccessToken)
	assert.True(t, config.Export.HyperlinkURLs)
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearTokenEnv(t)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", writeConfig(t, "http://127.0.0.1"),
		"--keyword", "django",
		"--output", "users.csv",
	}))

	_, err := loadConfig(cmd)
	assert.ErrorIs(t, err, crawler.ErrInvalidParameter, "max count defaults to zero")
}

func TestRun_AbortsBeforeSearching(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		clearTokenEnv(t)
		server, searches := fakeGitHub(t, http.StatusOK)
		output := filepath.Join(t.TempDir(), "users.csv")

		err := execute(t, "--config", writeConfig(t, server.URL),
			"--keyword", "django", "--max-count", "1", "--output", output)
		assert.ErrorIs(t, err, credential.ErrCredentialLoad)
		assert.Zero(t, atomic.LoadInt32(searches))
		assert.NoFileExists(t, output)
	})

	t.Run("rejected token", func(t *testing.T) {
		clearTokenEnv(t)
		server, searches := fakeGitHub(t, http.StatusUnauthorized)
		output := filepath.Join(t.TempDir(), "users.csv")

		err := execute(t, "--config", writeConfig(t, server.URL), "--token", "bad",
			"--keyword", "django", "--max-count", "1", "--output", output)
		assert.ErrorIs(t, err, credential.ErrCredentialInvalid)
		assert.Zero(t, atomic.LoadInt32(searches))
		assert.NoFileExists(t, output)
	})

	t.Run("unsupported output", func(t *testing.T) {
		clearTokenEnv(t)
		server, searches := fakeGitHub(t, http.StatusOK)

		err := execute(t, "--config", writeConfig(t, server.URL), "--token", "ok",
			"--keyword", "django", "--max-count", "1",
			"--output", filepath.Join(t.TempDir(), "users.txt"))
		assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
		assert.Zero(t, atomic.LoadInt32(searches))
	})
}

func TestRun_SavesEmptyResult(t *testing.T) {
	clearTokenEnv(t)
	server, searches := fakeGitHub(t, http.StatusOK)
	output := filepath.Join(t.TempDir(), "users.csv")

	err := execute(t, "--config", writeConfig(t, server.URL), "--token", "ok",
		"--keyword", "django", "--max-count", "1", "--output", output)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(searches))
	assert.FileExists(t, output)
}
