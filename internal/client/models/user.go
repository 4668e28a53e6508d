package models

import "time"

// User is a locally registered account. Email is stored lower-cased.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  User
	Token string
}
