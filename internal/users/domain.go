package users

import (
	"time"

	"github.com/google/uuid"
)

// User statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User represents a managed account. Role is a plain string reference to a
// role name, not a foreign key: deleting the role leaves the reference
// orphaned and tolerated. PasswordHash is the bcrypt output and never
// serialized outward.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	Photo        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats aggregates the dashboard counters.
type Stats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
	NewSignups  int `json:"newSignups"`
}
