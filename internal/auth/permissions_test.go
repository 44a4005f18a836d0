package auth

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadPermissions_Success tests successfully loading permissions from YAML
func TestLoadPermissions_Success(t *testing.T) {
	tmpDir := t.TempDir()
	permFile := filepath.Join(tmpDir, "permissions.yml")

	content := `roles:
  Admin:
    - doctor:manage
    - reception:manage
    - dashboard:view
  Reception:
    - appointment:create
    - appointment:update_status
  Patient:
    - appointment:create
    - prescription:view
`

	err := os.WriteFile(permFile, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write test permissions file: %v", err)
	}

	perms, err := LoadPermissions(permFile)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if perms == nil {
		t.Fatal("Expected permissions map, got nil")
	}

	adminPerms, exists := perms["Admin"]
	if !exists {
		t.Error("Expected Admin role to exist")
	}
	if len(adminPerms) != 3 {
		t.Errorf("Expected 3 permissions for Admin, got %d", len(adminPerms))
	}
	if !contains(adminPerms, "doctor:manage") {
		t.Error("Expected Admin to have 'doctor:manage' permission")
	}
}

func TestLoadPermissions_FileNotFound(t *testing.T) {
	if _, err := LoadPermissions("/nonexistent/permissions.yml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoadPermissions_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	permFile := filepath.Join(tmpDir, "permissions.yml")
	if err := os.WriteFile(permFile, []byte("roles: [not a map"), 0644); err != nil {
		t.Fatalf("Failed to write test permissions file: %v", err)
	}
	if _, err := LoadPermissions(permFile); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestHasPermission_Allowed(t *testing.T) {
	perms := Permissions{
		"Reception": {"appointment:create", "appointment:update_status"},
	}
	pr := &Principal{AccountID: 1, Role: RoleReception}

	if !HasPermission(pr, "appointment:update_status", perms) {
		t.Error("Expected Reception to have 'appointment:update_status'")
	}
}

func TestHasPermission_DenyByDefault(t *testing.T) {
	perms := Permissions{
		"Reception": {"appointment:create"},
	}

	if HasPermission(&Principal{Role: RolePatient}, "appointment:create", perms) {
		t.Error("Expected unmapped role to be denied")
	}
	if HasPermission(&Principal{Role: RoleReception}, "prescription:create", perms) {
		t.Error("Expected unmapped permission to be denied")
	}
	if HasPermission(nil, "appointment:create", perms) {
		t.Error("Expected nil principal to be denied")
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"Patient", "Doctor", "Reception", "Admin"} {
		if _, ok := ParseRole(valid); !ok {
			t.Errorf("Expected '%s' to parse as a role", valid)
		}
	}
	for _, invalid := range []string{"", "patient", "SuperAdmin", "Nurse"} {
		if _, ok := ParseRole(invalid); ok {
			t.Errorf("Expected '%s' to be rejected", invalid)
		}
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
