package user

import "testing"

func TestParseRole_KnownRoles(t *testing.T) {
	if got := ParseRole("admin"); got != RoleAdmin {
		t.Fatalf("expected admin, got %s", got)
	}
	if got := ParseRole("Decorator"); got != RoleDecorator {
		t.Fatalf("expected decorator, got %s", got)
	}
	if got := ParseRole("user"); got != RoleUser {
		t.Fatalf("expected user, got %s", got)
	}
}

func TestParseRole_UnknownDefaultsToUser(t *testing.T) {
	for _, s := range []string{"", "superadmin", "root", "  "} {
		if got := ParseRole(s); got != RoleUser {
			t.Fatalf("expected user for %q, got %s", s, got)
		}
	}
}
