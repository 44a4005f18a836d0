package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
)

type mockRepository struct {
	createFunc                  func(appointmentID, doctorID, patientID int64, medication, dosage, instructions string) (*Prescription, error)
	getFunc                     func(id int64) (*Prescription, error)
	listByDoctorFunc            func(doctorID int64, limit, offset int) ([]Prescription, int, error)
	listByPatientFunc           func(patientID int64, limit, offset int) ([]Prescription, int, error)
	appointmentParticipantsFunc func(appointmentID int64) (int64, int64, error)
	doctorIDByAccountFunc       func(accountID int64) (int64, error)
	patientIDByAccountFunc      func(accountID int64) (int64, error)
}

func (m *mockRepository) Create(ctx context.Context, appointmentID, doctorID, patientID int64, medication, dosage, instructions string) (*Prescription, error) {
	if m.createFunc != nil {
		return m.createFunc(appointmentID, doctorID, patientID, medication, dosage, instructions)
	}
	return &Prescription{
		ID:                1,
		AppointmentID:     appointmentID,
		DoctorID:          doctorID,
		PatientID:         patientID,
		MedicationDetails: medication,
		Dosage:            dosage,
		Instructions:      instructions,
		IssuedAt:          time.Now(),
	}, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Prescription, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, ErrNotFound
}

func (m *mockRepository) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]Prescription, int, error) {
	if m.listByDoctorFunc != nil {
		return m.listByDoctorFunc(doctorID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockRepository) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]Prescription, int, error) {
	if m.listByPatientFunc != nil {
		return m.listByPatientFunc(patientID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockRepository) AppointmentParticipants(ctx context.Context, appointmentID int64) (int64, int64, error) {
	if m.appointmentParticipantsFunc != nil {
		return m.appointmentParticipantsFunc(appointmentID)
	}
	return 0, 0, ErrAppointmentNotFound
}

func (m *mockRepository) DoctorIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	if m.doctorIDByAccountFunc != nil {
		return m.doctorIDByAccountFunc(accountID)
	}
	return 0, ErrDoctorProfileMissing
}

func (m *mockRepository) PatientIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	if m.patientIDByAccountFunc != nil {
		return m.patientIDByAccountFunc(accountID)
	}
	return 0, ErrPatientProfileMissing
}

// TestIssue_Success tests that the prescription's patient comes from the
// appointment row, not from anything the caller sent
func TestIssue_Success(t *testing.T) {
	var createdPatientID int64
	mockRepo := &mockRepository{
		doctorIDByAccountFunc: func(accountID int64) (int64, error) { return 5, nil },
		appointmentParticipantsFunc: func(appointmentID int64) (int64, int64, error) {
			return 30, 5, nil
		},
		createFunc: func(appointmentID, doctorID, patientID int64, medication, dosage, instructions string) (*Prescription, error) {
			createdPatientID = patientID
			return &Prescription{ID: 9, AppointmentID: appointmentID, DoctorID: doctorID, PatientID: patientID, MedicationDetails: medication, IssuedAt: time.Now()}, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 12, Role: auth.RoleDoctor}
	rx, err := service.Issue(context.Background(), pr, IssueRequest{
		AppointmentID:     40,
		MedicationDetails: "Amoxicillin 500mg",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rx.ID != 9 {
		t.Errorf("Expected prescription id 9, got %d", rx.ID)
	}
	if createdPatientID != 30 {
		t.Errorf("Expected patient 30 from the appointment, got %d", createdPatientID)
	}
}

// TestIssue_NotAppointmentDoctor tests that a doctor cannot issue against
// another doctor's appointment
func TestIssue_NotAppointmentDoctor(t *testing.T) {
	mockRepo := &mockRepository{
		doctorIDByAccountFunc: func(accountID int64) (int64, error) { return 5, nil },
		appointmentParticipantsFunc: func(appointmentID int64) (int64, int64, error) {
			return 30, 6, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 12, Role: auth.RoleDoctor}
	_, err := service.Issue(context.Background(), pr, IssueRequest{
		AppointmentID:     40,
		MedicationDetails: "Ibuprofen 200mg",
	})
	if err != ErrNotAppointmentDoctor {
		t.Errorf("Expected ErrNotAppointmentDoctor, got: %v", err)
	}
}

func TestIssue_MissingMedication(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	pr := &auth.Principal{AccountID: 12, Role: auth.RoleDoctor}
	_, err := service.Issue(context.Background(), pr, IssueRequest{AppointmentID: 40})
	if err != ErrMissingMedication {
		t.Errorf("Expected ErrMissingMedication, got: %v", err)
	}
}

func TestIssue_UnknownAppointment(t *testing.T) {
	mockRepo := &mockRepository{
		doctorIDByAccountFunc: func(accountID int64) (int64, error) { return 5, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 12, Role: auth.RoleDoctor}
	_, err := service.Issue(context.Background(), pr, IssueRequest{
		AppointmentID:     99,
		MedicationDetails: "Paracetamol 500mg",
	})
	if err != ErrAppointmentNotFound {
		t.Errorf("Expected ErrAppointmentNotFound, got: %v", err)
	}
}

// TestListForCaller_DoctorScope tests that a doctor's list is scoped to their
// own issued prescriptions
func TestListForCaller_DoctorScope(t *testing.T) {
	var listedDoctorID int64
	mockRepo := &mockRepository{
		doctorIDByAccountFunc: func(accountID int64) (int64, error) { return 5, nil },
		listByDoctorFunc: func(doctorID int64, limit, offset int) ([]Prescription, int, error) {
			listedDoctorID = doctorID
			return []Prescription{{ID: 1, DoctorID: doctorID}}, 1, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 12, Role: auth.RoleDoctor}
	prescriptions, total, err := service.ListForCaller(context.Background(), pr, 10, 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if listedDoctorID != 5 {
		t.Errorf("Expected list scoped to doctor 5, got %d", listedDoctorID)
	}
	if total != 1 || len(prescriptions) != 1 {
		t.Errorf("Expected 1 prescription, got %d (total %d)", len(prescriptions), total)
	}
}

func TestListForCaller_PatientScope(t *testing.T) {
	var listedPatientID int64
	mockRepo := &mockRepository{
		patientIDByAccountFunc: func(accountID int64) (int64, error) { return 30, nil },
		listByPatientFunc: func(patientID int64, limit, offset int) ([]Prescription, int, error) {
			listedPatientID = patientID
			return nil, 0, nil
		},
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 8, Role: auth.RolePatient}
	_, _, err := service.ListForCaller(context.Background(), pr, 10, 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if listedPatientID != 30 {
		t.Errorf("Expected list scoped to patient 30, got %d", listedPatientID)
	}
}

func TestListForCaller_ReceptionRejected(t *testing.T) {
	service := NewService(&mockRepository{}, nil, nil)

	pr := &auth.Principal{AccountID: 3, Role: auth.RoleReception}
	_, _, err := service.ListForCaller(context.Background(), pr, 10, 0)
	if err != ErrCallerNotAllowed {
		t.Errorf("Expected ErrCallerNotAllowed, got: %v", err)
	}
}

// TestGetForCaller_OutOfScopeReportsNotFound tests that a patient asking for
// someone else's prescription learns nothing about its existence
func TestGetForCaller_OutOfScopeReportsNotFound(t *testing.T) {
	mockRepo := &mockRepository{
		getFunc: func(id int64) (*Prescription, error) {
			return &Prescription{ID: id, DoctorID: 5, PatientID: 31}, nil
		},
		patientIDByAccountFunc: func(accountID int64) (int64, error) { return 30, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 8, Role: auth.RolePatient}
	_, err := service.GetForCaller(context.Background(), pr, 9)
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestGetForCaller_DoctorOwn(t *testing.T) {
	mockRepo := &mockRepository{
		getFunc: func(id int64) (*Prescription, error) {
			return &Prescription{ID: id, DoctorID: 5, PatientID: 30}, nil
		},
		doctorIDByAccountFunc: func(accountID int64) (int64, error) { return 5, nil },
	}
	service := NewService(mockRepo, nil, nil)

	pr := &auth.Principal{AccountID: 12, Role: auth.RoleDoctor}
	rx, err := service.GetForCaller(context.Background(), pr, 9)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rx.ID != 9 {
		t.Errorf("Expected prescription 9, got %d", rx.ID)
	}
}
