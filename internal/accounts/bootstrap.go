package accounts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// BootstrapService seeds the first super-admin account. Admin registration
// through the API requires an existing super admin, so a fresh database
// needs exactly one seeded out of band.
type BootstrapService struct {
	db *sql.DB
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(db *sql.DB) *BootstrapService {
	return &BootstrapService{db: db}
}

// SuperAdminCount returns the number of active super-admin profiles.
func (s *BootstrapService) SuperAdminCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM admins ad
		JOIN accounts a ON a.id = ad.account_id
		WHERE ad.is_super AND a.is_active
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count super admins: %w", err)
	}
	return count, nil
}

// SeedSuperAdmin creates the account, the super-admin profile and a
// self-referencing activation-log entry in one transaction. Returns the new
// account id.
func (s *BootstrapService) SeedSuperAdmin(ctx context.Context, username, email, password string) (int64, error) {
	switch {
	case username == "":
		return 0, ErrMissingUsername
	case email == "":
		return 0, ErrMissingEmail
	case password == "":
		return 0, ErrMissingPassword
	case len(password) < DefaultMinPasswordLength:
		return 0, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var accountID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO accounts (username, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, 'Admin', TRUE, $4)
		RETURNING id
	`, username, email, string(hash), time.Now()).Scan(&accountID)
	if err != nil {
		if mapped := uniqueViolationError(err); mapped != nil {
			return 0, mapped
		}
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	var profileID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO admins (account_id, full_name, phone, is_super)
		VALUES ($1, $2, '', TRUE)
		RETURNING id
	`, accountID, username).Scan(&profileID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert admin profile: %w", err)
	}

	// The first admin activates itself; the log still records the event.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO admin_activation_logs (activated_admin_id, activated_by_admin_id, activated_at)
		VALUES ($1, $1, $2)
	`, profileID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert activation log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accountID, nil
}
