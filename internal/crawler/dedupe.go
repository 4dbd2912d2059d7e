package crawler

import "github.com/thep200/github-user-crawler/internal/model"

// Dedupe returns the distinct owner logins of repos in first-seen order.
func Dedupe(repos []model.RepoMatch) []string {
	seen := make(map[string]struct{}, len(repos))
	logins := make([]string, 0, len(repos))
	for _, repo := range repos {
		if _, ok := seen[repo.Username]; ok {
			continue
		}
		seen[repo.Username] = struct{}{}
		logins = append(logins, repo.Username)
	}
	return logins
}
