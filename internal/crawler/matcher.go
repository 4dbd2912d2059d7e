package crawler

import "strings"

// MatchKeyword returns the first keyword that is a substring of text. The
// comparison is exact: "django" does not match "Django-App".
func MatchKeyword(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}
