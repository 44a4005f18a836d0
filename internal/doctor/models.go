package doctor

import "time"

// Profile is a doctor profile joined with its account record.
type Profile struct {
	ID                   int64     `json:"id"`
	AccountID            int64     `json:"accountId"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	Specialization       string    `json:"specialization"`
	AvailabilitySchedule string    `json:"availabilitySchedule,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ExportRow is one line of the doctor CSV export, including the appointment
// count aggregated at query time.
type ExportRow struct {
	ID                int64
	Username          string
	Email             string
	Specialization    string
	Phone             string
	IsActive          bool
	TotalAppointments int
}

// UpdateProfileRequest carries optional field updates. Email changes go
// through the account store.
type UpdateProfileRequest struct {
	Specialization       *string `json:"specialization,omitempty"`
	AvailabilitySchedule *string `json:"availabilitySchedule,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	Email                *string `json:"email,omitempty"`
}
