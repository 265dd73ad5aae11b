package model

// Scope carries the identity of the current user through every
// use-case call. AccessToken is the user's gateway JWT, forwarded so
// row-level policies apply to every read and write made on their
// behalf.
type Scope struct {
	UserID      string
	Email       string
	AccessToken string
}
