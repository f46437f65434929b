package rbac

// Permission identifiers understood by the platform. The catalog is fixed at
// build time; roles persist an explicit boolean grant for every entry.
const (
	PermUserCreate = "user:create"
	PermUserRead   = "user:read"
	PermUserUpdate = "user:update"
	PermUserDelete = "user:delete"

	PermRoleCreate = "role:create"
	PermRoleRead   = "role:read"
	PermRoleUpdate = "role:update"
	PermRoleDelete = "role:delete"
)

var catalog = []string{
	PermUserCreate,
	PermUserRead,
	PermUserUpdate,
	PermUserDelete,
	PermRoleCreate,
	PermRoleRead,
	PermRoleUpdate,
	PermRoleDelete,
}

// AllPermissions returns the ordered permission catalog.
func AllPermissions() []string {
	perms := make([]string, len(catalog))
	copy(perms, catalog)
	return perms
}

// KnownPermission reports whether name is part of the catalog.
func KnownPermission(name string) bool {
	for _, p := range catalog {
		if p == name {
			return true
		}
	}
	return false
}

// CompletePermissions normalizes any subset of catalog keys into a complete
// grant map: every catalog permission gets an explicit entry, absent keys
// default to false. Keys outside the catalog are ignored, which tolerates
// forward/backward catalog skew in stored roles.
func CompletePermissions(input map[string]bool) map[string]bool {
	perms := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		perms[p] = input[p]
	}
	return perms
}

// MergePermissions applies the provided grant updates on top of current and
// returns a complete map. Only keys present in updates change; keys are never
// removed.
func MergePermissions(current, updates map[string]bool) map[string]bool {
	perms := CompletePermissions(current)
	for _, p := range catalog {
		if granted, ok := updates[p]; ok {
			perms[p] = granted
		}
	}
	return perms
}
