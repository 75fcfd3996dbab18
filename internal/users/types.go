// Package users implements the local user directory: validated CRUD over a
// pluggable store with bcrypt-hashed passwords.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User is the public view of a stored user. The password hash is never part of it.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record is a user as persisted.
type Record struct {
	User
	PasswordHash string `json:"-"`
}

// CreateRequest is the body of a create call.
type CreateRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateRequest changes only the fields that are set. An empty avatar clears it.
type UpdateRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// Patch is a normalized UpdateRequest handed to a Store.
type Patch struct {
	Name      *string
	Email     *string
	Avatar    *string // nil leaves the avatar unchanged; "" clears it
	UpdatedAt time.Time
}
