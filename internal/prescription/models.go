package prescription

import "time"

// Prescription is an immutable ledger entry tied to one appointment. Entries
// are never updated or deleted once issued.
type Prescription struct {
	ID                int64     `json:"id"`
	AppointmentID     int64     `json:"appointmentId"`
	DoctorID          int64     `json:"doctorId"`
	DoctorName        string    `json:"doctorName"`
	PatientID         int64     `json:"patientId"`
	PatientName       string    `json:"patientName"`
	MedicationDetails string    `json:"medicationDetails"`
	Dosage            string    `json:"dosage,omitempty"`
	Instructions      string    `json:"instructions,omitempty"`
	IssuedAt          time.Time `json:"issuedAt"`
}

// IssueRequest creates a prescription against an appointment. The patient is
// derived from the appointment row, never from the payload.
type IssueRequest struct {
	AppointmentID     int64  `json:"appointmentId"`
	MedicationDetails string `json:"medicationDetails"`
	Dosage            string `json:"dosage,omitempty"`
	Instructions      string `json:"instructions,omitempty"`
}
