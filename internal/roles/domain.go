package roles

import (
	"time"

	"github.com/google/uuid"
)

// Role maps a unique name to a complete permission grant-set. Permissions
// always hold an explicit boolean for every catalog entry; absent keys are
// filled with false before the role is persisted or returned.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	Permissions map[string]bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
