package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Account events
	EventAccountRegistered    = "account.registered"
	EventAccountStatusChanged = "account.status_changed"
	EventPasswordReset        = "account.password_reset"

	// Appointment events
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentStatusChanged = "appointment.status_changed"

	// Prescription events
	EventPrescriptionIssued = "prescription.issued"

	// Admin events
	EventAdminActivated = "admin.activated"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// AccountRegisteredEvent is emitted after a successful registration
// transaction commits.
type AccountRegisteredEvent struct {
	BaseEvent
	Data AccountRegisteredData `json:"data"`
}

type AccountRegisteredData struct {
	AccountID int64     `json:"account_id"`
	ProfileID int64     `json:"profile_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountStatusChangedEvent is emitted when an account is toggled or
// soft-deactivated.
type AccountStatusChangedEvent struct {
	BaseEvent
	Data AccountStatusChangedData `json:"data"`
}

type AccountStatusChangedData struct {
	AccountID int64     `json:"account_id"`
	Role      string    `json:"role"`
	OldStatus string    `json:"old_status"` // "active" or "inactive"
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// PasswordResetEvent is emitted after a password hash is replaced through a
// management surface.
type PasswordResetEvent struct {
	BaseEvent
	Data PasswordResetData `json:"data"`
}

type PasswordResetData struct {
	AccountID int64     `json:"account_id"`
	Role      string    `json:"role"`
	ResetAt   time.Time `json:"reset_at"`
}

// AppointmentCreatedEvent is emitted after an appointment row is written.
// Downstream notification consumers fan this out to patient and doctor.
type AppointmentCreatedEvent struct {
	BaseEvent
	Data AppointmentCreatedData `json:"data"`
}

type AppointmentCreatedData struct {
	AppointmentID   int64     `json:"appointment_id"`
	PatientID       int64     `json:"patient_id"`
	DoctorID        int64     `json:"doctor_id"`
	ReceptionID     int64     `json:"reception_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
}

// AppointmentStatusChangedEvent is emitted on a reception status update.
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID int64     `json:"appointment_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// PrescriptionIssuedEvent is emitted when a doctor issues a prescription.
type PrescriptionIssuedEvent struct {
	BaseEvent
	Data PrescriptionIssuedData `json:"data"`
}

type PrescriptionIssuedData struct {
	PrescriptionID int64     `json:"prescription_id"`
	AppointmentID  int64     `json:"appointment_id"`
	DoctorID       int64     `json:"doctor_id"`
	PatientID      int64     `json:"patient_id"`
	IssuedAt       time.Time `json:"issued_at"`
}

// AdminActivatedEvent is emitted when a super admin registers a new admin.
type AdminActivatedEvent struct {
	BaseEvent
	Data AdminActivatedData `json:"data"`
}

type AdminActivatedData struct {
	ActivatedAdminID   int64     `json:"activated_admin_id"`
	ActivatedByAdminID int64     `json:"activated_by_admin_id"`
	ActivatedAt        time.Time `json:"activated_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "clinic-service",
	}
}
