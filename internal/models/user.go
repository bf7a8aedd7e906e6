package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Roles assignable to users
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
