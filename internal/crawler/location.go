package crawler

import "github.com/thep200/github-user-crawler/internal/model"

// FilterByLocation keeps the users whose location contains any of
// locations. Users without a location are dropped, and an empty locations
// list keeps nobody.
func FilterByLocation(users []*model.User, locations []string) []*model.User {
	kept := make([]*model.User, 0, len(users))
	for _, user := range users {
		if user.Location == nil {
			continue
		}
		if _, ok := MatchKeyword(*user.Location, locations); ok {
			kept = append(kept, user)
		}
	}
	return kept
}
