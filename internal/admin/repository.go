package admin

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
	ad.id, ad.account_id, a.username, a.email, ad.full_name, ad.phone,
	ad.is_super, a.is_active, a.created_at
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
		&pr.IsSuper,
		&pr.IsActive,
		&pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	pr.Phone = phone.String
	return &pr, nil
}

// List returns admin profiles newest-first with optional search.
func (r *Repository) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	whereClause := ""
	args := []interface{}{limit, offset}
	countArgs := []interface{}{}

	if search != "" {
		whereClause = `WHERE (ad.full_name ILIKE $3 OR a.username ILIKE $3 OR a.email ILIKE $3)`
		args = append(args, "%"+search+"%")
		countArgs = append(countArgs, "%"+search+"%")
	}

	var totalCount int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM admins ad
		JOIN accounts a ON a.id = ad.account_id
		%s
	`, strings.Replace(whereClause, "$3", "$1", -1))
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count admins: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM admins ad
		JOIN accounts a ON a.id = ad.account_id
		%s
		ORDER BY ad.id DESC
		LIMIT $1 OFFSET $2
	`, profileColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		pr, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan admin: %w", err)
		}
		profiles = append(profiles, *pr)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating admins: %w", err)
	}

	return profiles, totalCount, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM admins ad
		JOIN accounts a ON a.id = ad.account_id
		WHERE ad.id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	return pr, nil
}

func (r *Repository) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM admins ad
		JOIN accounts a ON a.id = ad.account_id
		WHERE ad.account_id = $1
	`, profileColumns)

	pr, err := scanProfile(r.db.QueryRowContext(ctx, query, accountID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	return pr, nil
}

// ListActivationLogs returns the audit trail of admin activations,
// newest-first, with admin names resolved.
func (r *Repository) ListActivationLogs(ctx context.Context, limit, offset int) ([]ActivationLogEntry, int, error) {
	var totalCount int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_activation_logs`,
	).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count activation logs: %w", err)
	}

	query := `
		SELECT l.id, l.activated_admin_id, act.full_name,
		       l.activated_by_admin_id, by_admin.full_name, l.activated_at
		FROM admin_activation_logs l
		JOIN admins act ON act.id = l.activated_admin_id
		JOIN admins by_admin ON by_admin.id = l.activated_by_admin_id
		ORDER BY l.activated_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activation logs: %w", err)
	}
	defer rows.Close()

	var entries []ActivationLogEntry
	for rows.Next() {
		var entry ActivationLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ActivatedAdminID,
			&entry.ActivatedAdminName,
			&entry.ActivatedByID,
			&entry.ActivatedByName,
			&entry.ActivatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activation log: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activation logs: %w", err)
	}

	return entries, totalCount, nil
}

// GetDashboardStats aggregates the admin landing-page counters in one round
// trip per counter.
func (r *Repository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM appointments WHERE appointment_time::date = CURRENT_DATE`, &stats.TodaysAppointments},
		{`SELECT COUNT(*) FROM appointments WHERE status = 'Pending'`, &stats.PendingAppointments},
		{`SELECT COUNT(*) FROM patients`, &stats.TotalPatients},
		{`SELECT COUNT(*) FROM doctors`, &stats.TotalDoctors},
		{`SELECT COUNT(*) FROM receptions`, &stats.TotalReceptionists},
		{`SELECT COUNT(*) FROM admins`, &stats.TotalAdmins},
		{`SELECT COUNT(*) FROM accounts WHERE is_active`, &stats.ActiveAccounts},
	}

	for _, q := range queries {
		if err := r.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to aggregate dashboard stats: %w", err)
		}
	}

	return &stats, nil
}
