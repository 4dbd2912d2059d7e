package githubapi

import (
	gh "github.com/google/go-github/v80/github"

	"github.com/thep200/github-user-crawler/internal/model"
)

func toUser(u *gh.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Login:       u.GetLogin(),
		HTMLURL:     u.HTMLURL,
		Name:        u.Name,
		Company:     u.Company,
		Location:    u.Location,
		Email:       u.Email,
		Hireable:    u.Hireable,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
	}
}

func toRepo(r *gh.Repository) *model.Repo {
	if r == nil {
		return nil
	}
	return &model.Repo{
		Name:        r.GetName(),
		Description: r.Description,
		HTMLURL:     r.HTMLURL,
		Language:    r.Language,
		OwnerLogin:  r.GetOwner().GetLogin(),
	}
}

func toUsers(in []*gh.User) []*model.User {
	out := make([]*model.User, 0, len(in))
	for _, u := range in {
		if u == nil {
			continue
		}
		out = append(out, toUser(u))
	}
	return out
}

func toRepos(in []*gh.Repository) []*model.Repo {
	out := make([]*model.Repo, 0, len(in))
	for _, r := range in {
		if r == nil {
			continue
		}
		out = append(out, toRepo(r))
	}
	return out
}
