package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/gorilla/mux"
)

type mockService struct {
	listFunc          func(limit, offset int, search string) ([]Profile, int, error)
	getFunc           func(id int64) (*Profile, error)
	getByAccountFunc  func(accountID int64) (*Profile, error)
	updateFunc        func(id int64, req UpdateProfileRequest) (*Profile, error)
	toggleStatusFunc  func(id int64) (bool, error)
	deactivateFunc    func(id int64) error
	resetPasswordFunc func(id int64, newPassword string) error
}

func (m *mockService) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	if m.listFunc != nil {
		return m.listFunc(limit, offset, search)
	}
	return nil, 0, nil
}

func (m *mockService) Get(ctx context.Context, id int64) (*Profile, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, ErrNotFound
}

func (m *mockService) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	if m.getByAccountFunc != nil {
		return m.getByAccountFunc(accountID)
	}
	return nil, ErrNotFound
}

func (m *mockService) Update(ctx context.Context, id int64, req UpdateProfileRequest) (*Profile, error) {
	if m.updateFunc != nil {
		return m.updateFunc(id, req)
	}
	return nil, ErrNotFound
}

func (m *mockService) ToggleStatus(ctx context.Context, id int64) (bool, error) {
	if m.toggleStatusFunc != nil {
		return m.toggleStatusFunc(id)
	}
	return false, ErrNotFound
}

func (m *mockService) Deactivate(ctx context.Context, id int64) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(id)
	}
	return ErrNotFound
}

func (m *mockService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	if m.resetPasswordFunc != nil {
		return m.resetPasswordFunc(id, newPassword)
	}
	return ErrNotFound
}

// TestListHandler tests pagination metadata in the list response
func TestListHandler(t *testing.T) {
	mockSvc := &mockService{
		listFunc: func(limit, offset int, search string) ([]Profile, int, error) {
			return []Profile{{ID: 2, FullName: "Newer"}, {ID: 1, FullName: "Older"}}, 2, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest("GET", "/api/patients?page=1&limit=20", nil)
	rr := httptest.NewRecorder()
	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp ListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Patients) != 2 {
		t.Errorf("Expected 2 patients, got %d", len(resp.Patients))
	}
	if resp.Meta.TotalRecords != 2 {
		t.Errorf("Expected total 2, got %d", resp.Meta.TotalRecords)
	}
}

// TestGetHandler_NotFound tests the 404 mapping
func TestGetHandler_NotFound(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/api/patients/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}
}

// TestGetHandler_BadID tests non-numeric path ids
func TestGetHandler_BadID(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/api/patients/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

// TestMeHandler tests self-profile resolution from the token identity
func TestMeHandler(t *testing.T) {
	mockSvc := &mockService{
		getByAccountFunc: func(accountID int64) (*Profile, error) {
			return &Profile{ID: 3, AccountID: accountID, FullName: "Alice"}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest("GET", "/api/patients/me", nil)
	req = auth.RequestWithPrincipal(req, &auth.Principal{AccountID: 77, Role: auth.RolePatient})
	rr := httptest.NewRecorder()
	handler.Me(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp ProfileResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Patient == nil || resp.Patient.AccountID != 77 {
		t.Errorf("Expected profile for account 77, got %+v", resp.Patient)
	}
}

// TestResetPasswordHandler tests payload plumbing into the service
func TestResetPasswordHandler(t *testing.T) {
	var gotPassword string
	mockSvc := &mockService{
		resetPasswordFunc: func(id int64, newPassword string) error {
			gotPassword = newPassword
			return nil
		},
	}
	handler := NewHandler(mockSvc)

	body := bytes.NewBufferString(`{"newPassword":"fresh-secret"}`)
	req := httptest.NewRequest("POST", "/api/patients/3/reset-password", body)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr := httptest.NewRecorder()
	handler.ResetPassword(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotPassword != "fresh-secret" {
		t.Errorf("Expected password to reach service, got '%s'", gotPassword)
	}
}
