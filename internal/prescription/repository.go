package prescription

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{db: database}
}

const prescriptionColumns = `
	pr.id, pr.appointment_id, pr.doctor_id, da.username, pr.patient_id,
	p.full_name, pr.medication_details, pr.dosage, pr.instructions, pr.issued_at
`

const prescriptionJoins = `
	FROM prescriptions pr
	JOIN doctors d ON d.id = pr.doctor_id
	JOIN accounts da ON da.id = d.account_id
	JOIN patients p ON p.id = pr.patient_id
`

func scanPrescription(scanner interface{ Scan(...interface{}) error }) (*Prescription, error) {
	var rx Prescription
	var dosage, instructions sql.NullString
	err := scanner.Scan(
		&rx.ID,
		&rx.AppointmentID,
		&rx.DoctorID,
		&rx.DoctorName,
		&rx.PatientID,
		&rx.PatientName,
		&rx.MedicationDetails,
		&dosage,
		&instructions,
		&rx.IssuedAt,
	)
	if err != nil {
		return nil, err
	}
	rx.Dosage = dosage.String
	rx.Instructions = instructions.String
	return &rx, nil
}

// Create writes a prescription row and returns it with names resolved.
func (r *Repository) Create(ctx context.Context, appointmentID, doctorID, patientID int64, medication, dosage, instructions string) (*Prescription, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO prescriptions (appointment_id, doctor_id, patient_id, medication_details, dosage, instructions, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, appointmentID, doctorID, patientID, medication, dosage, instructions, time.Now()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert prescription: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repository) Get(ctx context.Context, id int64) (*Prescription, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE pr.id = $1
	`, prescriptionColumns, prescriptionJoins)

	rx, err := scanPrescription(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query prescription: %w", err)
	}
	return rx, nil
}

func (r *Repository) listBy(ctx context.Context, column string, profileID int64, limit, offset int) ([]Prescription, int, error) {
	var totalCount int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM prescriptions pr WHERE pr.%s = $1`, column)
	if err := r.db.QueryRowContext(ctx, countQuery, profileID).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE pr.%s = $1
		ORDER BY pr.issued_at DESC
		LIMIT $2 OFFSET $3
	`, prescriptionColumns, prescriptionJoins, column)

	rows, err := r.db.QueryContext(ctx, query, profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []Prescription
	for rows.Next() {
		rx, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, *rx)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating prescriptions: %w", err)
	}

	return prescriptions, totalCount, nil
}

// ListByDoctor returns prescriptions the doctor issued, newest-first.
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64, limit, offset int) ([]Prescription, int, error) {
	return r.listBy(ctx, "doctor_id", doctorID, limit, offset)
}

// ListByPatient returns the patient's prescriptions, newest-first.
func (r *Repository) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]Prescription, int, error) {
	return r.listBy(ctx, "patient_id", patientID, limit, offset)
}

// AppointmentParticipants returns the patient and doctor profile ids of an
// appointment. The insert derives both from here so a payload can never
// re-point a prescription.
func (r *Repository) AppointmentParticipants(ctx context.Context, appointmentID int64) (int64, int64, error) {
	var patientID, doctorID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT patient_id, doctor_id FROM appointments WHERE id = $1`, appointmentID,
	).Scan(&patientID, &doctorID)
	if err == sql.ErrNoRows {
		return 0, 0, ErrAppointmentNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query appointment: %w", err)
	}
	return patientID, doctorID, nil
}

// DoctorIDByAccount resolves the caller's doctor profile id.
func (r *Repository) DoctorIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM doctors WHERE account_id = $1`, accountID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrDoctorProfileMissing
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve doctor profile: %w", err)
	}
	return id, nil
}

// PatientIDByAccount resolves the caller's patient profile id.
func (r *Repository) PatientIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM patients WHERE account_id = $1`, accountID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrPatientProfileMissing
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve patient profile: %w", err)
	}
	return id, nil
}
