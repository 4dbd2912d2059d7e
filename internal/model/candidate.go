package model

// User is a GitHub account as returned by search or by a profile fetch.
// Search hits only carry Login and HTMLURL; every other field stays nil
// until the profile is fetched. nil means the API returned no value.
type User struct {
	Login       string
	HTMLURL     *string
	Name        *string
	Company     *string
	Location    *string
	Email       *string
	Hireable    *bool
	PublicRepos *int
	Followers   *int
}

// DisplayName is the profile name, or the login when the name is unset.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Login
}

type Repo struct {
	Name        string
	Description *string
	HTMLURL     *string
	Language    *string
	OwnerLogin  string
}

// Text is the string keywords are matched against: name, a space, and the
// description (empty when unset).
func (r *Repo) Text() string {
	description := ""
	if r.Description != nil {
		description = *r.Description
	}
	return r.Name + " " + description
}
