// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. Every group and task is owned
// by exactly one user.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext carries the identity resolved from a bearer token.
// It is injected into the request context by the auth middleware.
type AuthContext struct {
	UserID   string
	Username string
}
