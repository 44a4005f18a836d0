package doctor

import "context"

// ServiceInterface defines the contract for doctor profile management
type ServiceInterface interface {
	List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error)
	Get(ctx context.Context, id int64) (*Profile, error)
	GetByAccount(ctx context.Context, accountID int64) (*Profile, error)
	Update(ctx context.Context, id int64, req UpdateProfileRequest) (*Profile, error)
	ToggleStatus(ctx context.Context, id int64) (bool, error)
	Deactivate(ctx context.Context, id int64) error
	ResetPassword(ctx context.Context, id int64, newPassword string) error
	ListForExport(ctx context.Context) ([]ExportRow, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
