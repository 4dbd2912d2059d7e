// Package credential produces the GitHub access token for a run and checks
// that GitHub accepts it before any search quota is spent.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/thep200/github-user-crawler/cfg"
)

var (
	// ErrCredentialLoad means no token could be produced.
	ErrCredentialLoad = errors.New("credential load failed")

	// ErrCredentialInvalid means GitHub rejected the probe call.
	ErrCredentialInvalid = errors.New("credential invalid")
)

// Source is either a literal token or a path to a file holding one. Path
// wins when both are set.
type Source struct {
	Token string
	Path  string
}

// SourceFromConfig reads the token fields of config.GithubApi.
func SourceFromConfig(config *cfg.Config) Source {
	return Source{
		Token: config.GithubApi.AccessToken,
		Path:  config.GithubApi.AccessTokenPath,
	}
}

// Load returns the token described by src. The file content is the token
// minus surrounding whitespace, not the raw bytes: editors add a trailing
// newline that would otherwise end up in the Authorization header.
func Load(src Source) (string, error) {
	if src.Path != "" {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("%w: could not open/read file %s: %w", ErrCredentialLoad, src.Path, err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", fmt.Errorf("%w: file %s is empty", ErrCredentialLoad, src.Path)
		}
		return token, nil
	}

	if src.Token == "" {
		return "", fmt.Errorf("%w: no access token or token file given", ErrCredentialLoad)
	}
	return src.Token, nil
}

// Prober makes one inexpensive authenticated call.
type Prober interface {
	Probe(ctx context.Context) error
}

// Validate runs the probe and maps any failure to ErrCredentialInvalid.
func Validate(ctx context.Context, prober Prober) error {
	if err := prober.Probe(ctx); err != nil {
		return fmt.Errorf("%w: test query failed, the token is most likely incorrect or expired: %w", ErrCredentialInvalid, err)
	}
	return nil
}
