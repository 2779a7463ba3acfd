package models

import (
	"time"
)

// Contact is a message left through the contact form
type Contact struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name,omitempty" db:"name"`
	Email       string    `json:"email" db:"email"`
	Subject     string    `json:"subject" db:"subject"`
	Message     string    `json:"message" db:"message"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
}

// Operator is an administrative account able to use the /v1/admin surface.
// Created by the explicit bootstrap step at startup, never as an import-time
// side effect.
type Operator struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
