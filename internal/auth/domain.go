package auth

import "github.com/google/uuid"

// Account is the credential-bearing view of a user used during login.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
}
