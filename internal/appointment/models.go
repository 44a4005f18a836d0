package appointment

import "time"

// Statuses the service assigns itself. The status column is an open string so
// front-desk workflows can introduce their own values without a migration.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
)

// Appointment is a ledger entry joined with display names for the three
// participating profiles.
type Appointment struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patientId"`
	PatientName     string    `json:"patientName"`
	DoctorID        int64     `json:"doctorId"`
	DoctorName      string    `json:"doctorName"`
	Specialization  string    `json:"specialization"`
	ReceptionID     int64     `json:"receptionId"`
	ReceptionName   string    `json:"receptionName"`
	AppointmentTime time.Time `json:"appointmentTime"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookRequest creates an appointment. PatientID is ignored for patient
// callers, who can only book for themselves; front-desk callers must set it.
type BookRequest struct {
	PatientID       int64     `json:"patientId,omitempty"`
	DoctorID        int64     `json:"doctorId"`
	AppointmentTime time.Time `json:"appointmentTime"`
	Notes           string    `json:"notes,omitempty"`
}

// UpdateStatusRequest sets a new status on an appointment.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
