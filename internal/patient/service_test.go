package patient

import (
	"context"
	"testing"
)

type mockRepository struct {
	listFunc               func(limit, offset int, search string) ([]Profile, int, error)
	getFunc                func(id int64) (*Profile, error)
	getByAccountFunc       func(accountID int64) (*Profile, error)
	updateFunc             func(id int64, req UpdateProfileRequest) error
	accountIDByProfileFunc func(id int64) (int64, error)
}

func (m *mockRepository) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	if m.listFunc != nil {
		return m.listFunc(limit, offset, search)
	}
	return nil, 0, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, ErrNotFound
}

func (m *mockRepository) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	if m.getByAccountFunc != nil {
		return m.getByAccountFunc(accountID)
	}
	return nil, ErrNotFound
}

func (m *mockRepository) Update(ctx context.Context, id int64, req UpdateProfileRequest) error {
	if m.updateFunc != nil {
		return m.updateFunc(id, req)
	}
	return nil
}

func (m *mockRepository) AccountIDByProfile(ctx context.Context, id int64) (int64, error) {
	if m.accountIDByProfileFunc != nil {
		return m.accountIDByProfileFunc(id)
	}
	return 0, ErrNotFound
}

type mockAccountManager struct {
	toggleStatusFunc  func(accountID int64, expectedRole string) (bool, error)
	deactivateFunc    func(accountID int64, expectedRole string) error
	updateEmailFunc   func(accountID int64, email string) error
	resetPasswordFunc func(accountID int64, newPassword, expectedRole string) error
}

func (m *mockAccountManager) ToggleStatus(ctx context.Context, accountID int64, expectedRole string) (bool, error) {
	if m.toggleStatusFunc != nil {
		return m.toggleStatusFunc(accountID, expectedRole)
	}
	return false, nil
}

func (m *mockAccountManager) Deactivate(ctx context.Context, accountID int64, expectedRole string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(accountID, expectedRole)
	}
	return nil
}

func (m *mockAccountManager) UpdateEmail(ctx context.Context, accountID int64, email string) error {
	if m.updateEmailFunc != nil {
		return m.updateEmailFunc(accountID, email)
	}
	return nil
}

func (m *mockAccountManager) ResetPassword(ctx context.Context, accountID int64, newPassword, expectedRole string) error {
	if m.resetPasswordFunc != nil {
		return m.resetPasswordFunc(accountID, newPassword, expectedRole)
	}
	return nil
}

// TestUpdate_EmailGoesThroughAccountStore tests that email changes hit the
// account store before the profile row is touched
func TestUpdate_EmailGoesThroughAccountStore(t *testing.T) {
	var emailUpdatedFor int64
	email := "new@example.com"
	mockRepo := &mockRepository{
		accountIDByProfileFunc: func(id int64) (int64, error) { return 77, nil },
		getFunc: func(id int64) (*Profile, error) {
			return &Profile{ID: id, AccountID: 77, Email: email}, nil
		},
	}
	mockAccounts := &mockAccountManager{
		updateEmailFunc: func(accountID int64, e string) error {
			emailUpdatedFor = accountID
			return nil
		},
	}
	service := NewService(mockRepo, mockAccounts)

	profile, err := service.Update(context.Background(), 3, UpdateProfileRequest{Email: &email})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if emailUpdatedFor != 77 {
		t.Errorf("Expected email update for account 77, got %d", emailUpdatedFor)
	}
	if profile.Email != email {
		t.Errorf("Expected updated email in profile, got '%s'", profile.Email)
	}
}

// TestToggleStatus_UsesPatientRoleGuard tests the role constraint on toggles
func TestToggleStatus_UsesPatientRoleGuard(t *testing.T) {
	var gotRole string
	mockRepo := &mockRepository{
		accountIDByProfileFunc: func(id int64) (int64, error) { return 77, nil },
	}
	mockAccounts := &mockAccountManager{
		toggleStatusFunc: func(accountID int64, expectedRole string) (bool, error) {
			gotRole = expectedRole
			return true, nil
		},
	}
	service := NewService(mockRepo, mockAccounts)

	isActive, err := service.ToggleStatus(context.Background(), 3)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !isActive {
		t.Error("Expected toggled state true")
	}
	if gotRole != "Patient" {
		t.Errorf("Expected role guard 'Patient', got '%s'", gotRole)
	}
}

// TestDeactivate_UnknownProfile tests the not-found path
func TestDeactivate_UnknownProfile(t *testing.T) {
	service := NewService(&mockRepository{}, &mockAccountManager{})

	err := service.Deactivate(context.Background(), 99)
	if err != ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got: %v", err)
	}
}
