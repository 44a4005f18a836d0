package appointment

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for appointment ledger persistence
type RepositoryInterface interface {
	Create(ctx context.Context, patientID, doctorID, receptionID int64, appointmentTime time.Time, status, notes string) (*Appointment, error)
	Get(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) (string, error)

	PatientIDByAccount(ctx context.Context, accountID int64) (int64, error)
	DoctorIDByAccount(ctx context.Context, accountID int64) (int64, error)
	ReceptionIDByAccount(ctx context.Context, accountID int64) (int64, error)
	DefaultReceptionID(ctx context.Context) (int64, error)
	DoctorActive(ctx context.Context, doctorID int64) (bool, error)
	PatientExists(ctx context.Context, patientID int64) (bool, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
