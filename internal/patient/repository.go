package patient

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

const profileColumns = `
	p.id, p.account_id, a.username, a.email, p.full_name, p.date_of_birth,
	p.gender, p.phone, p.address, a.is_active, a.created_at
`

func scanProfile(scanner interface{ Scan(...interface{}) error }) (*Profile, error) {
	var pr Profile
	var dateOfBirth sql.NullTime
	var gender, phone, address sql.NullString
	err := scanner.Scan(
		&pr.ID,
		&pr.AccountID,
		&pr.Username,
		&pr.Email,
		&pr.FullName,
		&dateOfBirth,
		&gender,
		&phone,
		&address,
		&pr.IsActive,
		&pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dateOfBirth.Valid {
		pr.DateOfBirth = &dateOfBirth.Time
	}
	pr.Gender = gender.String
	pr.Phone = phone.String
	pr.Address = address.String
	return &pr, nil
}

// List returns patient profiles newest-first with optional search over name,
// username and email, plus the total count for pagination metadata.
func (r *Repository) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	whereClause := ""
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}

	if search != "" {
		whereClause = `WHERE (p.full_name ILIKE $3 OR a.username ILIKE $3 OR a.email ILIKE $3)`
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
	}

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM patients p
		JOIN accounts a ON a.id = p.account_id
		%s
	`, strings.Replace(whereClause, "$3", "$1", -1))
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM patients p
		JOIN accounts a ON a.id = p.account_id
		%s
		ORDER BY p.id DESC
		LIMIT $1 OFFSET $2
	`, profileColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		pr, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		profiles = append(profiles, *pr)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating patients: %w", err)
	}

	return profiles, totalCount, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM patients p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return pr, nil
}

// GetByAccount resolves the profile belonging to an account id. Used by the
// self-service surfaces where the caller only knows its token identity.
func (r *Repository) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM patients p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.account_id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, accountID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return pr, nil
}

// Update applies the non-nil profile fields. Email is not handled here; the
// service routes it through the account store.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateProfileRequest) error {
	var updates []string
	var args []interface{}
	argIndex := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIndex))
		args = append(args, *req.FullName)
		argIndex++
	}
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return ErrInvalidDate
		}
		updates = append(updates, fmt.Sprintf("date_of_birth = $%d", argIndex))
		args = append(args, parsed)
		argIndex++
	}
	if req.Gender != nil {
		updates = append(updates, fmt.Sprintf("gender = $%d", argIndex))
		args = append(args, *req.Gender)
		argIndex++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *req.Phone)
		argIndex++
	}
	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argIndex))
		args = append(args, *req.Address)
		argIndex++
	}

	if len(updates) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE patients
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argIndex)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
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

// AccountIDByProfile resolves a patient profile id to its account id.
func (r *Repository) AccountIDByProfile(ctx context.Context, id int64) (int64, error) {
	var accountID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT account_id FROM patients WHERE id = $1`, id,
	).Scan(&accountID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve patient account: %w", err)
	}
	return accountID, nil
}
