package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
)

type mockRepository struct {
	createFunc               func(patientID, doctorID, receptionID int64, t time.Time, status, notes string) (*Appointment, error)
	getFunc                  func(id int64) (*Appointment, error)
	listFunc                 func(f Filter, limit, offset int) ([]Appointment, int, error)
	updateStatusFunc         func(id int64, status string) (string, error)
	patientIDByAccountFunc   func(accountID int64) (int64, error)
	doctorIDByAccountFunc    func(accountID int64) (int64, error)
	receptionIDByAccountFunc func(accountID int64) (int64, error)
	defaultReceptionIDFunc   func() (int64, error)
	doctorActiveFunc         func(doctorID int64) (bool, error)
	patientExistsFunc        func(patientID int64) (bool, error)
}

func (m *mockRepository) Create(ctx context.Context, patientID, doctorID, receptionID int64, t time.Time, status, notes string) (*Appointment, error) {
	if m.createFunc != nil {
		return m.createFunc(patientID, doctorID, receptionID, t, status, notes)
	}
	return &Appointment{ID: 1, PatientID: patientID, DoctorID: doctorID, ReceptionID: receptionID, AppointmentTime: t, Status: status, Notes: notes}, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Appointment, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error) {
	if m.listFunc != nil {
		return m.listFunc(f, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status string) (string, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(id, status)
	}
	return "", ErrNotFound
}

func (m *mockRepository) PatientIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	if m.patientIDByAccountFunc != nil {
		return m.patientIDByAccountFunc(accountID)
	}
	return 0, ErrPatientNotFound
}

func (m *mockRepository) DoctorIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	if m.doctorIDByAccountFunc != nil {
		return m.doctorIDByAccountFunc(accountID)
	}
	return 0, ErrDoctorNotFound
}

func (m *mockRepository) ReceptionIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	if m.receptionIDByAccountFunc != nil {
		return m.receptionIDByAccountFunc(accountID)
	}
	return 0, ErrNoFrontDesk
}

func (m *mockRepository) DefaultReceptionID(ctx context.Context) (int64, error) {
	if m.defaultReceptionIDFunc != nil {
		return m.defaultReceptionIDFunc()
	}
	return 0, ErrNoFrontDesk
}

func (m *mockRepository) DoctorActive(ctx context.Context, doctorID int64) (bool, error) {
	if m.doctorActiveFunc != nil {
		return m.doctorActiveFunc(doctorID)
	}
	return true, nil
}

func (m *mockRepository) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	if m.patientExistsFunc != nil {
		return m.patientExistsFunc(patientID)
	}
	return true, nil
}

func futureTime() time.Time {
	return time.Now().Add(48 * time.Hour)
}

// TestBook_PatientSelfService tests that a patient booking starts Pending and
// is assigned to the default front desk
func TestBook_PatientSelfService(t *testing.T) {
	mockRepo := &mockRepository{
		patientIDByAccountFunc: func(accountID int64) (int64, error) { return 21, nil },
		defaultReceptionIDFunc: func() (int64, error) { return 2, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 7, Role: auth.RolePatient}
	ap, err := service.Book(context.Background(), pr, BookRequest{
		DoctorID:        3,
		AppointmentTime: futureTime(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ap.Status != StatusPending {
		t.Errorf("Expected status Pending, got '%s'", ap.Status)
	}
	if ap.PatientID != 21 {
		t.Errorf("Expected caller's patient profile 21, got %d", ap.PatientID)
	}
	if ap.ReceptionID != 2 {
		t.Errorf("Expected default front desk 2, got %d", ap.ReceptionID)
	}
}

// TestBook_PatientIgnoresPatientIDField tests that a patient cannot book for
// someone else
func TestBook_PatientIgnoresPatientIDField(t *testing.T) {
	mockRepo := &mockRepository{
		patientIDByAccountFunc: func(accountID int64) (int64, error) { return 21, nil },
		defaultReceptionIDFunc: func() (int64, error) { return 2, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 7, Role: auth.RolePatient}
	ap, err := service.Book(context.Background(), pr, BookRequest{
		PatientID:       99, // someone else
		DoctorID:        3,
		AppointmentTime: futureTime(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ap.PatientID != 21 {
		t.Errorf("Expected booking pinned to caller's profile 21, got %d", ap.PatientID)
	}
}

// TestBook_ReceptionConfirmsImmediately tests the front-desk booking path
func TestBook_ReceptionConfirmsImmediately(t *testing.T) {
	mockRepo := &mockRepository{
		receptionIDByAccountFunc: func(accountID int64) (int64, error) { return 5, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 8, Role: auth.RoleReception}
	ap, err := service.Book(context.Background(), pr, BookRequest{
		PatientID:       21,
		DoctorID:        3,
		AppointmentTime: futureTime(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ap.Status != StatusConfirmed {
		t.Errorf("Expected status Confirmed, got '%s'", ap.Status)
	}
	if ap.ReceptionID != 5 {
		t.Errorf("Expected caller's desk 5, got %d", ap.ReceptionID)
	}
}

// TestBook_ReceptionRequiresPatient tests missing patient id on desk bookings
func TestBook_ReceptionRequiresPatient(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	pr := &auth.Principal{AccountID: 8, Role: auth.RoleReception}
	_, err := service.Book(context.Background(), pr, BookRequest{
		DoctorID:        3,
		AppointmentTime: futureTime(),
	})
	if err != ErrMissingPatient {
		t.Fatalf("Expected ErrMissingPatient, got: %v", err)
	}
}

// TestBook_InactiveDoctor tests the doctor activity check
func TestBook_InactiveDoctor(t *testing.T) {
	mockRepo := &mockRepository{
		doctorActiveFunc: func(doctorID int64) (bool, error) { return false, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 7, Role: auth.RolePatient}
	_, err := service.Book(context.Background(), pr, BookRequest{
		DoctorID:        3,
		AppointmentTime: futureTime(),
	})
	if err != ErrDoctorNotFound {
		t.Fatalf("Expected ErrDoctorNotFound, got: %v", err)
	}
}

// TestBook_PastTime tests rejection of bookings in the past
func TestBook_PastTime(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	pr := &auth.Principal{AccountID: 7, Role: auth.RolePatient}
	_, err := service.Book(context.Background(), pr, BookRequest{
		DoctorID:        3,
		AppointmentTime: time.Now().Add(-time.Hour),
	})
	if err != ErrTimeInPast {
		t.Fatalf("Expected ErrTimeInPast, got: %v", err)
	}
}

// TestBook_DoctorCannotBook tests that doctors have no booking surface
func TestBook_DoctorCannotBook(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	pr := &auth.Principal{AccountID: 4, Role: auth.RoleDoctor}
	_, err := service.Book(context.Background(), pr, BookRequest{
		DoctorID:        3,
		AppointmentTime: futureTime(),
	})
	if err != ErrCallerNotAllowed {
		t.Fatalf("Expected ErrCallerNotAllowed, got: %v", err)
	}
}

// TestListForCaller_PatientScope tests that patient listings filter to the
// caller's own profile
func TestListForCaller_PatientScope(t *testing.T) {
	var gotFilter Filter
	mockRepo := &mockRepository{
		patientIDByAccountFunc: func(accountID int64) (int64, error) { return 21, nil },
		listFunc: func(f Filter, limit, offset int) ([]Appointment, int, error) {
			gotFilter = f
			return []Appointment{{ID: 1, PatientID: 21}}, 1, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 7, Role: auth.RolePatient}
	_, _, err := service.ListForCaller(context.Background(), pr, 20, 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotFilter.PatientID == nil || *gotFilter.PatientID != 21 {
		t.Errorf("Expected patient filter 21, got %+v", gotFilter)
	}
	if gotFilter.DoctorID != nil {
		t.Error("Expected no doctor filter for patient caller")
	}
}

// TestListForCaller_AdminUnscoped tests the all-entries view for admins
func TestListForCaller_AdminUnscoped(t *testing.T) {
	var gotFilter Filter
	mockRepo := &mockRepository{
		listFunc: func(f Filter, limit, offset int) ([]Appointment, int, error) {
			gotFilter = f
			return nil, 0, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 1, Role: auth.RoleAdmin}
	_, _, err := service.ListForCaller(context.Background(), pr, 20, 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotFilter.PatientID != nil || gotFilter.DoctorID != nil {
		t.Errorf("Expected unscoped filter for admin, got %+v", gotFilter)
	}
}

// TestGetForCaller_OutOfScopeReportsNotFound tests that a patient cannot see
// someone else's entry and cannot learn it exists
func TestGetForCaller_OutOfScopeReportsNotFound(t *testing.T) {
	mockRepo := &mockRepository{
		getFunc: func(id int64) (*Appointment, error) {
			return &Appointment{ID: id, PatientID: 99}, nil
		},
		patientIDByAccountFunc: func(accountID int64) (int64, error) { return 21, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 7, Role: auth.RolePatient}
	_, err := service.GetForCaller(context.Background(), pr, 5)
	if err != ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got: %v", err)
	}
}

// TestUpdateStatus_OpenStringAccepted tests that any non-empty status string
// is allowed
func TestUpdateStatus_OpenStringAccepted(t *testing.T) {
	mockRepo := &mockRepository{
		updateStatusFunc: func(id int64, status string) (string, error) {
			return StatusPending, nil
		},
		getFunc: func(id int64) (*Appointment, error) {
			return &Appointment{ID: id, Status: "Checked-In"}, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	ap, err := service.UpdateStatus(context.Background(), 5, "Checked-In")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ap.Status != "Checked-In" {
		t.Errorf("Expected status 'Checked-In', got '%s'", ap.Status)
	}
}

// TestUpdateStatus_Empty tests the empty-status rejection
func TestUpdateStatus_Empty(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	_, err := service.UpdateStatus(context.Background(), 5, "")
	if err != ErrMissingStatus {
		t.Fatalf("Expected ErrMissingStatus, got: %v", err)
	}
}
