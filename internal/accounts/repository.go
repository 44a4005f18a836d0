package accounts

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/db"
	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{db: database}
}

// uniqueViolationError maps a unique-constraint violation to the matching
// sentinel. The database constraint is the authoritative uniqueness guard;
// the pre-insert existence checks only exist for friendlier error ordering.
func uniqueViolationError(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || string(pqErr.Code) != db.UniqueViolation {
		return nil
	}
	switch {
	case strings.Contains(pqErr.Constraint, "username"):
		return ErrUsernameTaken
	case strings.Contains(pqErr.Constraint, "email"):
		return ErrEmailTaken
	default:
		return ErrUsernameTaken
	}
}

func (r *Repository) insertAccountTx(ctx context.Context, tx *sql.Tx, username, email, passwordHash, role string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO accounts (username, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING id
	`, username, email, passwordHash, role, time.Now()).Scan(&id)
	if err != nil {
		if mapped := uniqueViolationError(err); mapped != nil {
			return 0, mapped
		}
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}
	return id, nil
}

// CreatePatient creates the account row and the patient profile row in a
// single transaction. Returns the new account id and profile id.
func (r *Repository) CreatePatient(ctx context.Context, req RegisterPatientRequest, passwordHash string) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accountID, err := r.insertAccountTx(ctx, tx, req.Username, req.Email, passwordHash, "Patient")
	if err != nil {
		return 0, 0, err
	}

	var dateOfBirth sql.NullTime
	if req.DateOfBirth != "" {
		if parsed, parseErr := time.Parse("2006-01-02", req.DateOfBirth); parseErr == nil {
			dateOfBirth = sql.NullTime{Time: parsed, Valid: true}
		}
	}

	var profileID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO patients (account_id, full_name, date_of_birth, gender, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, accountID, req.FullName, dateOfBirth, req.Gender, req.Phone, req.Address).Scan(&profileID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert patient profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accountID, profileID, nil
}

// CreateDoctor creates the account row and the doctor profile row in a
// single transaction.
func (r *Repository) CreateDoctor(ctx context.Context, req RegisterDoctorRequest, passwordHash string) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accountID, err := r.insertAccountTx(ctx, tx, req.Username, req.Email, passwordHash, "Doctor")
	if err != nil {
		return 0, 0, err
	}

	var profileID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO doctors (account_id, specialization, availability_schedule, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, accountID, req.Specialization, req.AvailabilitySchedule, req.Phone).Scan(&profileID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert doctor profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accountID, profileID, nil
}

// CreateReception creates the account row and the reception profile row in a
// single transaction.
func (r *Repository) CreateReception(ctx context.Context, req RegisterReceptionRequest, passwordHash string) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accountID, err := r.insertAccountTx(ctx, tx, req.Username, req.Email, passwordHash, "Reception")
	if err != nil {
		return 0, 0, err
	}

	var profileID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO receptions (account_id, full_name, phone)
		VALUES ($1, $2, $3)
		RETURNING id
	`, accountID, req.FullName, req.Phone).Scan(&profileID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert reception profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accountID, profileID, nil
}

// CreateAdmin creates the account row, the admin profile row and an
// activation-log entry recording which admin performed the activation, all in
// a single transaction. activatedBy is the admin profile id of the caller.
func (r *Repository) CreateAdmin(ctx context.Context, req RegisterAdminRequest, passwordHash string, activatedBy int64) (int64, int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	accountID, err := r.insertAccountTx(ctx, tx, req.Username, req.Email, passwordHash, "Admin")
	if err != nil {
		return 0, 0, err
	}

	var profileID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO admins (account_id, full_name, phone, is_super)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, accountID, req.FullName, req.Phone, req.IsSuper).Scan(&profileID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert admin profile: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO admin_activation_logs (activated_admin_id, activated_by_admin_id, activated_at)
		VALUES ($1, $2, $3)
	`, profileID, activatedBy, time.Now())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert activation log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accountID, profileID, nil
}

func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// EmailExistsForOther reports whether another account already uses the email.
// Used by profile updates so an account keeping its own email is not a
// conflict.
func (r *Repository) EmailExistsForOther(ctx context.Context, email string, accountID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1 AND id != $2)`, email, accountID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetByUsername retrieves an account by username regardless of its active
// flag. The caller decides how inactive accounts are reported.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return r.getAccount(ctx, `WHERE username = $1`, username)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	return r.getAccount(ctx, `WHERE id = $1`, id)
}

func (r *Repository) getAccount(ctx context.Context, where string, arg interface{}) (*Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, role, is_active, created_at, last_login
		FROM accounts
		%s
	`, where)

	var acct Account
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&acct.ID,
		&acct.Username,
		&acct.Email,
		&acct.PasswordHash,
		&acct.Role,
		&acct.IsActive,
		&acct.CreatedAt,
		&lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	if lastLogin.Valid {
		acct.LastLogin = &lastLogin.Time
	}
	return &acct, nil
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login = $1 WHERE id = $2`, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// ToggleStatus flips the active flag of an account, guarded by the expected
// role so a management surface cannot toggle accounts outside its own role.
// Returns the new active state.
func (r *Repository) ToggleStatus(ctx context.Context, id int64, expectedRole string) (bool, error) {
	var isActive bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET is_active = NOT is_active
		WHERE id = $1 AND role = $2
		RETURNING is_active
	`, id, expectedRole).Scan(&isActive)
	if err == sql.ErrNoRows {
		return false, ErrAccountNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle account status: %w", err)
	}
	return isActive, nil
}

// Deactivate soft-deactivates an account. Accounts are never deleted so
// appointment and prescription history stays intact.
func (r *Repository) Deactivate(ctx context.Context, id int64, expectedRole string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET is_active = FALSE
		WHERE id = $1 AND role = $2
	`, id, expectedRole)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// UpdateEmail changes an account's email. Uniqueness is enforced by the
// database constraint.
func (r *Repository) UpdateEmail(ctx context.Context, id int64, email string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET email = $1 WHERE id = $2`, email, id,
	)
	if err != nil {
		if mapped := uniqueViolationError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update email: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $1 WHERE id = $2`, passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// List returns accounts newest-first with optional search over username and
// email, plus the total count for pagination metadata.
func (r *Repository) List(ctx context.Context, limit, offset int, search, role string) ([]Account, int, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}
	argIndex := 3

	if search != "" {
		whereClause += fmt.Sprintf(` AND (username ILIKE $%d OR email ILIKE $%d)`, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
		argIndex++
	}
	if role != "" && role != "all" {
		whereClause += fmt.Sprintf(` AND role = $%d`, argIndex)
		args = append(args, role)
		countArgs = append(countArgs, role)
	}

	// The count query has no LIMIT/OFFSET, so its filter placeholders start
	// at $1 instead of $3.
	var totalCount int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM accounts %s`, countWhereClause(whereClause))
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, role, is_active, created_at, last_login
		FROM accounts
		%s
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accts []Account
	for rows.Next() {
		var acct Account
		var lastLogin sql.NullTime
		err := rows.Scan(
			&acct.ID,
			&acct.Username,
			&acct.Email,
			&acct.PasswordHash,
			&acct.Role,
			&acct.IsActive,
			&acct.CreatedAt,
			&lastLogin,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan account: %w", err)
		}
		if lastLogin.Valid {
			acct.LastLogin = &lastLogin.Time
		}
		accts = append(accts, acct)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accts, totalCount, nil
}

// countWhereClause remaps the data query's filter placeholders ($3, $4 after
// LIMIT/OFFSET) to the count query's positions ($1, $2).
func countWhereClause(whereClause string) string {
	whereClause = strings.Replace(whereClause, "$3", "$1", -1)
	return strings.Replace(whereClause, "$4", "$2", -1)
}

// AdminProfileByAccount resolves an account id to its admin profile id and
// super flag. Used by the admin registration gate.
func (r *Repository) AdminProfileByAccount(ctx context.Context, accountID int64) (int64, bool, error) {
	var profileID int64
	var isSuper bool
	err := r.db.QueryRowContext(ctx,
		`SELECT id, is_super FROM admins WHERE account_id = $1`, accountID,
	).Scan(&profileID, &isSuper)
	if err == sql.ErrNoRows {
		return 0, false, ErrAccountNotFound
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query admin profile: %w", err)
	}
	return profileID, isSuper, nil
}
