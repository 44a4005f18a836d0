package prescription

import "context"

// RepositoryInterface defines the contract for prescription persistence
type RepositoryInterface interface {
	Create(ctx context.Context, appointmentID, doctorID, patientID int64, medication, dosage, instructions string) (*Prescription, error)
	Get(ctx context.Context, id int64) (*Prescription, error)
	ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]Prescription, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]Prescription, int, error)
	AppointmentParticipants(ctx context.Context, appointmentID int64) (int64, int64, error)
	DoctorIDByAccount(ctx context.Context, accountID int64) (int64, error)
	PatientIDByAccount(ctx context.Context, accountID int64) (int64, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
