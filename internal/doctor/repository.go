package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{db: database}
}

const profileColumns = `
	d.id, d.account_id, a.username, a.email, d.specialization,
	d.availability_schedule, d.phone, a.is_active, a.created_at
`

func scanProfile(scanner interface{ Scan(...interface{}) error }) (*Profile, error) {
	var pr Profile
	var schedule, phone sql.NullString
	err := scanner.Scan(
		&pr.ID,
		&pr.AccountID,
		&pr.Username,
		&pr.Email,
		&pr.Specialization,
		&schedule,
		&phone,
		&pr.IsActive,
		&pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	pr.AvailabilitySchedule = schedule.String
	pr.Phone = phone.String
	return &pr, nil
}

// List returns doctor profiles newest-first with optional search over
// specialization, username and email.
func (r *Repository) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	whereClause := ""
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}

	if search != "" {
		whereClause = `WHERE (d.specialization ILIKE $3 OR a.username ILIKE $3 OR a.email ILIKE $3)`
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
	}

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM doctors d
		JOIN accounts a ON a.id = d.account_id
		%s
	`, strings.Replace(whereClause, "$3", "$1", -1))
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM doctors d
		JOIN accounts a ON a.id = d.account_id
		%s
		ORDER BY d.id DESC
		LIMIT $1 OFFSET $2
	`, profileColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		pr, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan doctor: %w", err)
		}
		profiles = append(profiles, *pr)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating doctors: %w", err)
	}

	return profiles, totalCount, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM doctors d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor: %w", err)
	}
	return pr, nil
}

func (r *Repository) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM doctors d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.account_id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, accountID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor: %w", err)
	}
	return pr, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateProfileRequest) error {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.Specialization != nil {
		updates = append(updates, fmt.Sprintf("specialization = $%d", argIndex))
		args = append(args, *req.Specialization)
		argIndex++
	}
	if req.AvailabilitySchedule != nil {
		updates = append(updates, fmt.Sprintf("availability_schedule = $%d", argIndex))
		args = append(args, *req.AvailabilitySchedule)
		argIndex++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *req.Phone)
		argIndex++
	}

	if len(updates) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE doctors
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argIndex)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) AccountIDByProfile(ctx context.Context, id int64) (int64, error) {
	var accountID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id FROM doctors WHERE id = $1`, id,
	).Scan(&accountID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve doctor account: %w", err)
	}
	return accountID, nil
}

// ListForExport returns every doctor with an aggregated appointment count,
// newest-first, for the CSV export.
func (r *Repository) ListForExport(ctx context.Context) ([]ExportRow, error) {
	query := `
		SELECT d.id, a.username, a.email, d.specialization, d.phone, a.is_active,
		       COUNT(ap.id) AS total_appointments
		FROM doctors d
		JOIN accounts a ON a.id = d.account_id
		LEFT JOIN appointments ap ON ap.doctor_id = d.id
		GROUP BY d.id, a.username, a.email, d.specialization, d.phone, a.is_active
		ORDER BY d.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors for export: %w", err)
	}
	defer rows.Close()

	var export []ExportRow
	for rows.Next() {
		var row ExportRow
		var phone sql.NullString
		err := rows.Scan(
			&row.ID,
			&row.Username,
			&row.Email,
			&row.Specialization,
			&phone,
			&row.IsActive,
			&row.TotalAppointments,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		row.Phone = phone.String
		export = append(export, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}

	return export, nil
}
