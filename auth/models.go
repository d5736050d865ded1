package auth

import "time"

// User is the domain representation of a dashboard account. It mirrors the
// users table and carries no JSON annotations so it can be reused by
// different presentation layers.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials are the opaque strings extracted from the login form.
type Credentials struct {
	Email    string
	Password string
}

// Session is the principal handed back after a successful sign-in.
type Session struct {
	Token string
	User  User
}
