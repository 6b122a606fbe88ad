package domain

import "testing"

func TestParseRole(t *testing.T) {
	valid := []string{"user", "technician", "manager", "admin", "superAdmin"}
	for _, s := range valid {
		role, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", s, err)
		}
		if string(role) != s {
			t.Fatalf("ParseRole(%q) = %q", s, role)
		}
	}

	invalid := []string{"", "superadmin", "SUPERADMIN", "root", "Admin", "user "}
	for _, s := range invalid {
		if _, err := ParseRole(s); err != ErrUnknownRole {
			t.Fatalf("ParseRole(%q): expected ErrUnknownRole, got %v", s, err)
		}
	}
}
