package model

// Account is a parent account as reported by the Ada auth service's
// userinfo endpoint. The dashboard reads accounts; it never writes them
// back.
type Account struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}
