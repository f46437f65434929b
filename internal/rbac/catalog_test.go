package rbac

import "testing"

func TestCompletePermissionsFillsCatalog(t *testing.T) {
	perms := CompletePermissions(map[string]bool{PermUserRead: true})
	if len(perms) != len(AllPermissions()) {
		t.Fatalf("expected %d entries, got %d", len(AllPermissions()), len(perms))
	}
	if !perms[PermUserRead] {
		t.Fatalf("expected %s granted", PermUserRead)
	}
	for _, p := range AllPermissions() {
		if p == PermUserRead {
			continue
		}
		granted, ok := perms[p]
		if !ok {
			t.Fatalf("missing explicit entry for %s", p)
		}
		if granted {
			t.Fatalf("expected %s to default to false", p)
		}
	}
}

func TestCompletePermissionsIgnoresUnknownKeys(t *testing.T) {
	perms := CompletePermissions(map[string]bool{"widget:paint": true, PermRoleDelete: true})
	if _, ok := perms["widget:paint"]; ok {
		t.Fatalf("unknown key should be ignored")
	}
	if !perms[PermRoleDelete] {
		t.Fatalf("expected %s granted", PermRoleDelete)
	}
}

func TestMergePermissionsOnlyTouchesProvidedKeys(t *testing.T) {
	current := CompletePermissions(map[string]bool{PermUserRead: true, PermUserCreate: true})
	merged := MergePermissions(current, map[string]bool{PermUserCreate: false, PermRoleRead: true})

	if merged[PermUserCreate] {
		t.Fatalf("expected %s revoked", PermUserCreate)
	}
	if !merged[PermUserRead] {
		t.Fatalf("expected %s untouched", PermUserRead)
	}
	if !merged[PermRoleRead] {
		t.Fatalf("expected %s granted", PermRoleRead)
	}
	if len(merged) != len(AllPermissions()) {
		t.Fatalf("merge must keep the mapping complete")
	}
}

func TestMergePermissionsIdempotent(t *testing.T) {
	current := CompletePermissions(nil)
	updates := map[string]bool{PermUserRead: true}

	once := MergePermissions(current, updates)
	twice := MergePermissions(once, updates)

	for _, p := range AllPermissions() {
		if once[p] != twice[p] {
			t.Fatalf("merge not idempotent for %s", p)
		}
	}
}

func TestKnownPermission(t *testing.T) {
	if !KnownPermission(PermUserDelete) {
		t.Fatalf("catalog entry reported unknown")
	}
	if KnownPermission("user:fly") {
		t.Fatalf("non-catalog entry reported known")
	}
}
