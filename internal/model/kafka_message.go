package model

// Message keys on the matches topic. The value of each message is the JSON
// encoding of the matching row type.
const (
	KeyUserMatch = "user_match"
	KeyRepoMatch = "repo_match"
	KeyProfile   = "profile"
)
