package models

// User is an identity record. Password always holds the bcrypt hash;
// plaintext never survives past the registration boundary.
type User struct {
	ID       int64
	Username string
	Email    string
	Password string
}
