package prescription

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/gorilla/mux"
)

type mockService struct {
	issueFunc         func(pr *auth.Principal, req IssueRequest) (*Prescription, error)
	listForCallerFunc func(pr *auth.Principal, limit, offset int) ([]Prescription, int, error)
	getForCallerFunc  func(pr *auth.Principal, id int64) (*Prescription, error)
}

func (m *mockService) Issue(ctx context.Context, pr *auth.Principal, req IssueRequest) (*Prescription, error) {
	if m.issueFunc != nil {
		return m.issueFunc(pr, req)
	}
	return nil, ErrCallerNotAllowed
}

func (m *mockService) ListForCaller(ctx context.Context, pr *auth.Principal, limit, offset int) ([]Prescription, int, error) {
	if m.listForCallerFunc != nil {
		return m.listForCallerFunc(pr, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockService) GetForCaller(ctx context.Context, pr *auth.Principal, id int64) (*Prescription, error) {
	if m.getForCallerFunc != nil {
		return m.getForCallerFunc(pr, id)
	}
	return nil, ErrNotFound
}

var _ ServiceInterface = (*mockService)(nil)

func doctorPrincipal() *auth.Principal {
	return &auth.Principal{AccountID: 12, Username: "drlee", Role: auth.RoleDoctor}
}

func TestIssueHandler_Created(t *testing.T) {
	mock := &mockService{
		issueFunc: func(pr *auth.Principal, req IssueRequest) (*Prescription, error) {
			return &Prescription{ID: 9, AppointmentID: req.AppointmentID, MedicationDetails: req.MedicationDetails, IssuedAt: time.Now()}, nil
		},
	}
	handler := NewHandler(mock)

	body, _ := json.Marshal(IssueRequest{AppointmentID: 40, MedicationDetails: "Amoxicillin 500mg"})
	req := httptest.NewRequest("POST", "/api/prescriptions", bytes.NewReader(body))
	req = auth.RequestWithPrincipal(req, doctorPrincipal())

	rr := httptest.NewRecorder()
	handler.Issue(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp PrescriptionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Prescription == nil || resp.Prescription.ID != 9 {
		t.Errorf("Expected prescription 9 in response, got %+v", resp.Prescription)
	}
}

func TestIssueHandler_WrongDoctorForbidden(t *testing.T) {
	mock := &mockService{
		issueFunc: func(pr *auth.Principal, req IssueRequest) (*Prescription, error) {
			return nil, ErrNotAppointmentDoctor
		},
	}
	handler := NewHandler(mock)

	body, _ := json.Marshal(IssueRequest{AppointmentID: 40, MedicationDetails: "Ibuprofen 200mg"})
	req := httptest.NewRequest("POST", "/api/prescriptions", bytes.NewReader(body))
	req = auth.RequestWithPrincipal(req, doctorPrincipal())

	rr := httptest.NewRecorder()
	handler.Issue(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
}

func TestIssueHandler_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("POST", "/api/prescriptions", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()
	handler.Issue(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rr.Code)
	}
}

func TestListHandler_EmptySliceSerialized(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/api/prescriptions", nil)
	req = auth.RequestWithPrincipal(req, doctorPrincipal())

	rr := httptest.NewRecorder()
	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"prescriptions":[]`)) {
		t.Errorf("Expected empty array, got: %s", rr.Body.String())
	}
}

func TestGetHandler_BadID(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/api/prescriptions/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	req = auth.RequestWithPrincipal(req, doctorPrincipal())

	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/api/prescriptions/9", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "9"})
	req = auth.RequestWithPrincipal(req, doctorPrincipal())

	rr := httptest.NewRecorder()
	handler.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rr.Code)
	}
}
