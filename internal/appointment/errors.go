package appointment

import "errors"

var (
	ErrNotFound         = errors.New("appointment not found")
	ErrMissingDoctor    = errors.New("doctor id is required")
	ErrMissingPatient   = errors.New("patient id is required")
	ErrMissingTime      = errors.New("appointment time is required")
	ErrTimeInPast       = errors.New("appointment time must be in the future")
	ErrMissingStatus    = errors.New("status is required")
	ErrDoctorNotFound   = errors.New("doctor not found or inactive")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrNoFrontDesk      = errors.New("no active front desk available")
	ErrCallerNotAllowed = errors.New("caller role cannot book appointments")
)
