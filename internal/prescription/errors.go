package prescription

import "errors"

var (
	ErrNotFound             = errors.New("prescription not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNotAppointmentDoctor = errors.New("only the appointment's doctor may issue a prescription")
	ErrMissingAppointment   = errors.New("appointment id is required")
	ErrMissingMedication    = errors.New("medication details are required")
	ErrCallerNotAllowed     = errors.New("caller role has no prescription surface")
	ErrDoctorProfileMissing = errors.New("doctor profile not found")
	ErrPatientProfileMissing = errors.New("patient profile not found")
)
