package audit

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is a single append-only audit record. Entries reference the
// acting user by ID without referential integrity: actor fields are empty
// when the user has since been deleted.
type LogEntry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Action     string
	Details    string
	CreatedAt  time.Time
	ActorName  string
	ActorEmail string
}

// Action labels recorded by the domain services.
const (
	ActionCreatedUser = "Created user"
	ActionUpdatedUser = "Updated user"
	ActionDeletedUser = "Deleted user"
	ActionCreatedRole = "Created role"
	ActionUpdatedRole = "Updated role"
	ActionDeletedRole = "Deleted role"
)
