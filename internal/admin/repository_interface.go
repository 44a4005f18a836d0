package admin

import "context"

// RepositoryInterface defines the contract for admin profile persistence and
// the audit trail
type RepositoryInterface interface {
	List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error)
	Get(ctx context.Context, id int64) (*Profile, error)
	GetByAccount(ctx context.Context, accountID int64) (*Profile, error)
	ListActivationLogs(ctx context.Context, limit, offset int) ([]ActivationLogEntry, int, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
