package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{db: database}
}

const appointmentColumns = `
	ap.id, ap.patient_id, p.full_name, ap.doctor_id, da.username,
	d.specialization, ap.reception_id, rc.full_name, ap.appointment_time,
	ap.status, ap.notes, ap.created_at
`

const appointmentJoins = `
	FROM appointments ap
	JOIN patients p ON p.id = ap.patient_id
	JOIN doctors d ON d.id = ap.doctor_id
	JOIN accounts da ON da.id = d.account_id
	JOIN receptions rc ON rc.id = ap.reception_id
`

func scanAppointment(scanner interface{ Scan(...interface{}) error }) (*Appointment, error) {
	var ap Appointment
	var notes sql.NullString
	err := scanner.Scan(
		&ap.ID,
		&ap.PatientID,
		&ap.PatientName,
		&ap.DoctorID,
		&ap.DoctorName,
		&ap.Specialization,
		&ap.ReceptionID,
		&ap.ReceptionName,
		&ap.AppointmentTime,
		&ap.Status,
		&notes,
		&ap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ap.Notes = notes.String
	return &ap, nil
}

// Create writes a ledger entry and returns it with display names resolved.
func (r *Repository) Create(ctx context.Context, patientID, doctorID, receptionID int64, appointmentTime time.Time, status, notes string) (*Appointment, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, reception_id, appointment_time, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, patientID, doctorID, receptionID, appointmentTime, status, notes, time.Now()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repository) Get(ctx context.Context, id int64) (*Appointment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE ap.id = $1
	`, appointmentColumns, appointmentJoins)

	ap, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}
	return ap, nil
}

// Filter scopes a listing to one participant. Nil fields are unscoped.
type Filter struct {
	PatientID *int64
	DoctorID  *int64
}

// List returns appointments most-recent-first with the total count.
func (r *Repository) List(ctx context.Context, f Filter, limit, offset int) ([]Appointment, int, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}
	argIndex := 3

	if f.PatientID != nil {
		whereClause += fmt.Sprintf(" AND ap.patient_id = $%d", argIndex)
		args = append(args, *f.PatientID)
		countArgs = append(countArgs, *f.PatientID)
		argIndex++
	}
	if f.DoctorID != nil {
		whereClause += fmt.Sprintf(" AND ap.doctor_id = $%d", argIndex)
		args = append(args, *f.DoctorID)
		countArgs = append(countArgs, *f.DoctorID)
	}

	var totalCount int
	countWhere := whereClause
	countWhere = strings.Replace(countWhere, "$3", "$1", 1)
	countWhere = strings.Replace(countWhere, "$4", "$2", 1)
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM appointments ap %s`, countWhere)
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY ap.appointment_time DESC
		LIMIT $1 OFFSET $2
	`, appointmentColumns, appointmentJoins, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		ap, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *ap)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, totalCount, nil
}

// UpdateStatus sets a new status and returns the previous one.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) (string, error) {
	var oldStatus string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM appointments WHERE id = $1`, id,
	).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query appointment status: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return "", fmt.Errorf("failed to update appointment status: %w", err)
	}
	return oldStatus, nil
}

// PatientIDByAccount resolves the caller's patient profile id.
func (r *Repository) PatientIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM patients WHERE account_id = $1`, accountID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrPatientNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve patient profile: %w", err)
	}
	return id, nil
}

// DoctorIDByAccount resolves the caller's doctor profile id.
func (r *Repository) DoctorIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM doctors WHERE account_id = $1`, accountID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrDoctorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve doctor profile: %w", err)
	}
	return id, nil
}

// ReceptionIDByAccount resolves the caller's reception profile id.
func (r *Repository) ReceptionIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM receptions WHERE account_id = $1`, accountID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNoFrontDesk
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve reception profile: %w", err)
	}
	return id, nil
}

// DefaultReceptionID returns the longest-standing active front desk, used for
// patient self-bookings.
func (r *Repository) DefaultReceptionID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT rc.id
		FROM receptions rc
		JOIN accounts a ON a.id = rc.account_id
		WHERE a.is_active
		ORDER BY rc.id ASC
		LIMIT 1
	`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNoFrontDesk
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve default front desk: %w", err)
	}
	return id, nil
}

// DoctorActive reports whether the doctor exists with an active account.
func (r *Repository) DoctorActive(ctx context.Context, doctorID int64) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx, `
		SELECT a.is_active
		FROM doctors d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.id = $1
	`, doctorID).Scan(&active)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check doctor: %w", err)
	}
	return active, nil
}

// PatientExists reports whether the patient profile exists.
func (r *Repository) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, patientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check patient: %w", err)
	}
	return exists, nil
}
