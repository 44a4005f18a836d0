package prescription

import (
	"context"
	"log"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/messaging"
)

// MetricsRecorder records prescription business metrics. Nil-safe in the
// service.
type MetricsRecorder interface {
	RecordPrescriptionOperation(ctx context.Context, operation string)
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   MetricsRecorder
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics MetricsRecorder) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Issue creates a prescription. Only the doctor assigned to the appointment
// may issue against it, and the patient is taken from the appointment row.
func (s *Service) Issue(ctx context.Context, pr *auth.Principal, req IssueRequest) (*Prescription, error) {
	if req.AppointmentID == 0 {
		return nil, ErrMissingAppointment
	}
	if req.MedicationDetails == "" {
		return nil, ErrMissingMedication
	}

	callerDoctorID, err := s.repo.DoctorIDByAccount(ctx, pr.AccountID)
	if err != nil {
		return nil, err
	}

	patientID, doctorID, err := s.repo.AppointmentParticipants(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if doctorID != callerDoctorID {
		return nil, ErrNotAppointmentDoctor
	}

	rx, err := s.repo.Create(ctx, req.AppointmentID, doctorID, patientID, req.MedicationDetails, req.Dosage, req.Instructions)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventPrescriptionIssued, messaging.PrescriptionIssuedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPrescriptionIssued),
		Data: messaging.PrescriptionIssuedData{
			PrescriptionID: rx.ID,
			AppointmentID:  rx.AppointmentID,
			DoctorID:       rx.DoctorID,
			PatientID:      rx.PatientID,
			IssuedAt:       rx.IssuedAt,
		},
	})
	s.recordOperation(ctx, "issue")
	return rx, nil
}

// ListForCaller returns the prescriptions the caller may see: doctors their
// own issued entries, patients their own received ones. Other roles have no
// prescription surface.
func (s *Service) ListForCaller(ctx context.Context, pr *auth.Principal, limit, offset int) ([]Prescription, int, error) {
	switch pr.Role {
	case auth.RoleDoctor:
		doctorID, err := s.repo.DoctorIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, 0, err
		}
		return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
	case auth.RolePatient:
		patientID, err := s.repo.PatientIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, 0, err
		}
		return s.repo.ListByPatient(ctx, patientID, limit, offset)
	default:
		return nil, 0, ErrCallerNotAllowed
	}
}

// GetForCaller returns one prescription if the caller is its doctor or its
// patient. Out-of-scope ids report not-found.
func (s *Service) GetForCaller(ctx context.Context, pr *auth.Principal, id int64) (*Prescription, error) {
	rx, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch pr.Role {
	case auth.RoleDoctor:
		own, err := s.repo.DoctorIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, err
		}
		if rx.DoctorID != own {
			return nil, ErrNotFound
		}
	case auth.RolePatient:
		own, err := s.repo.PatientIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, err
		}
		if rx.PatientID != own {
			return nil, ErrNotFound
		}
	default:
		return nil, ErrCallerNotAllowed
	}

	return rx, nil
}

func (s *Service) publishEvent(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

func (s *Service) recordOperation(ctx context.Context, operation string) {
	if s.metrics != nil {
		s.metrics.RecordPrescriptionOperation(ctx, operation)
	}
}
