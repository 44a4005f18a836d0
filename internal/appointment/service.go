package appointment

import (
	"context"
	"log"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/messaging"
)

// MetricsRecorder records appointment business metrics. Nil-safe in the
// service.
type MetricsRecorder interface {
	RecordAppointmentOperation(ctx context.Context, operation string)
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

// Book creates a ledger entry. A patient books only for themselves and the
// entry starts Pending, assigned to the longest-standing active front desk.
// A front-desk caller books for any patient and the entry starts Confirmed,
// attributed to the caller's own desk.
func (s *Service) Book(ctx context.Context, pr *auth.Principal, req BookRequest) (*Appointment, error) {
	if req.DoctorID == 0 {
		return nil, ErrMissingDoctor
	}
	if req.AppointmentTime.IsZero() {
		return nil, ErrMissingTime
	}
	if req.AppointmentTime.Before(time.Now()) {
		return nil, ErrTimeInPast
	}

	active, err := s.repo.DoctorActive(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrDoctorNotFound
	}

	var patientID, receptionID int64
	var status string

	switch pr.Role {
	case auth.RolePatient:
		patientID, err = s.repo.PatientIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, err
		}
		receptionID, err = s.repo.DefaultReceptionID(ctx)
		if err != nil {
			return nil, err
		}
		status = StatusPending

	case auth.RoleReception:
		if req.PatientID == 0 {
			return nil, ErrMissingPatient
		}
		exists, err := s.repo.PatientExists(ctx, req.PatientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrPatientNotFound
		}
		patientID = req.PatientID
		receptionID, err = s.repo.ReceptionIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, err
		}
		status = StatusConfirmed

	default:
		return nil, ErrCallerNotAllowed
	}

	ap, err := s.repo.Create(ctx, patientID, req.DoctorID, receptionID, req.AppointmentTime, status, req.Notes)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventAppointmentCreated, messaging.AppointmentCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentCreated),
		Data: messaging.AppointmentCreatedData{
			AppointmentID:   ap.ID,
			PatientID:       ap.PatientID,
			DoctorID:        ap.DoctorID,
			ReceptionID:     ap.ReceptionID,
			AppointmentTime: ap.AppointmentTime,
			Status:          ap.Status,
		},
	})
	s.recordOperation(ctx, "book")
	return ap, nil
}

// ListForCaller returns the ledger slice the caller may see: patients and
// doctors see their own entries, front desk and admin see everything.
func (s *Service) ListForCaller(ctx context.Context, pr *auth.Principal, limit, offset int) ([]Appointment, int, error) {
	var f Filter

	switch pr.Role {
	case auth.RolePatient:
		id, err := s.repo.PatientIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, 0, err
		}
		f.PatientID = &id
	case auth.RoleDoctor:
		id, err := s.repo.DoctorIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, 0, err
		}
		f.DoctorID = &id
	}

	return s.repo.List(ctx, f, limit, offset)
}

// GetForCaller returns one entry if it falls within the caller's scope. An
// out-of-scope id reports not-found rather than forbidden so existence does
// not leak.
func (s *Service) GetForCaller(ctx context.Context, pr *auth.Principal, id int64) (*Appointment, error) {
	ap, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch pr.Role {
	case auth.RolePatient:
		own, err := s.repo.PatientIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, err
		}
		if ap.PatientID != own {
			return nil, ErrNotFound
		}
	case auth.RoleDoctor:
		own, err := s.repo.DoctorIDByAccount(ctx, pr.AccountID)
		if err != nil {
			return nil, err
		}
		if ap.DoctorID != own {
			return nil, ErrNotFound
		}
	}

	return ap, nil
}

// UpdateStatus sets a new status. The route guard restricts this to the
// front desk; the status value itself is an open string.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Appointment, error) {
	if status == "" {
		return nil, ErrMissingStatus
	}

	oldStatus, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.EventAppointmentStatusChanged, messaging.AppointmentStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
		Data: messaging.AppointmentStatusChangedData{
			AppointmentID: id,
			OldStatus:     oldStatus,
			NewStatus:     status,
			ChangedAt:     time.Now().UTC(),
		},
	})
	s.recordOperation(ctx, "status_update")
	return s.repo.Get(ctx, id)
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
		s.metrics.RecordAppointmentOperation(ctx, operation)
	}
}
