package reception

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
	rc.id, rc.account_id, a.username, a.email, rc.full_name, rc.phone,
	a.is_active, a.created_at
`

func scanProfile(scanner interface{ Scan(...interface{}) error }) (*Profile, error) {
	var pr Profile
	var phone sql.NullString
	err := scanner.Scan(
		&pr.ID,
		&pr.AccountID,
		&pr.Username,
		&pr.Email,
		&pr.FullName,
		&phone,
		&pr.IsActive,
		&pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	pr.Phone = phone.String
	return &pr, nil
}

// List returns receptionist profiles newest-first with optional search over
// name, username and email.
func (r *Repository) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	whereClause := ""
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}

	if search != "" {
		whereClause = `WHERE (rc.full_name ILIKE $3 OR a.username ILIKE $3 OR a.email ILIKE $3)`
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
	}

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM receptions rc
		JOIN accounts a ON a.id = rc.account_id
		%s
	`, strings.Replace(whereClause, "$3", "$1", -1))
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count receptionists: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM receptions rc
		JOIN accounts a ON a.id = rc.account_id
		%s
		ORDER BY rc.id DESC
		LIMIT $1 OFFSET $2
	`, profileColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query receptionists: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		pr, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan receptionist: %w", err)
		}
		profiles = append(profiles, *pr)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating receptionists: %w", err)
	}

	return profiles, totalCount, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM receptions rc
		JOIN accounts a ON a.id = rc.account_id
		WHERE rc.id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query receptionist: %w", err)
	}
	return pr, nil
}

func (r *Repository) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM receptions rc
		JOIN accounts a ON a.id = rc.account_id
		WHERE rc.account_id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, accountID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query receptionist: %w", err)
	}
	return pr, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateProfileRequest) error {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIndex))
		args = append(args, *req.FullName)
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
		UPDATE receptions
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argIndex)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update receptionist: %w", err)
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
		`SELECT account_id FROM receptions WHERE id = $1`, id,
	).Scan(&accountID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve receptionist account: %w", err)
	}
	return accountID, nil
}

// ListForExport returns every receptionist with the count of appointments
// the desk has handled, newest-first, for the CSV export.
func (r *Repository) ListForExport(ctx context.Context) ([]ExportRow, error) {
	query := `
		SELECT rc.id, a.username, rc.full_name, a.email, rc.phone, a.is_active,
		       COUNT(ap.id) AS appointments_handled
		FROM receptions rc
		JOIN accounts a ON a.id = rc.account_id
		LEFT JOIN appointments ap ON ap.reception_id = rc.id
		GROUP BY rc.id, a.username, rc.full_name, a.email, rc.phone, a.is_active
		ORDER BY rc.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query receptionists for export: %w", err)
	}
	defer rows.Close()

	var export []ExportRow
	for rows.Next() {
		var row ExportRow
		var phone sql.NullString
		err := rows.Scan(
			&row.ID,
			&row.Username,
			&row.FullName,
			&row.Email,
			&phone,
			&row.IsActive,
			&row.AppointmentsHandled,
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

// OldestProfileID returns the longest-standing active front desk. Patient
// self-bookings are assigned to it as the default desk.
func (r *Repository) OldestProfileID(ctx context.Context) (int64, error) {
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
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve default front desk: %w", err)
	}
	return id, nil
}
