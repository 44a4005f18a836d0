package admin

import (
	"context"

	"github.com/clinic-appointment-crm/clinic-service/internal/accounts"
)

// ServiceInterface defines the contract for the admin surfaces
type ServiceInterface interface {
	List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error)
	Get(ctx context.Context, id int64) (*Profile, error)
	GetByAccount(ctx context.Context, accountID int64) (*Profile, error)
	ListActivationLogs(ctx context.Context, callerAccountID int64, limit, offset int) ([]ActivationLogEntry, int, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	ListAccounts(ctx context.Context, callerAccountID int64, limit, offset int, search, role string) ([]accounts.Account, int, error)
	ToggleAccountStatus(ctx context.Context, callerAccountID, accountID int64) (bool, error)
	ResetAccountPassword(ctx context.Context, callerAccountID, accountID int64, newPassword string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
