package reception

import "context"

// RepositoryInterface defines the contract for receptionist profile
// persistence
type RepositoryInterface interface {
	List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error)
	Get(ctx context.Context, id int64) (*Profile, error)
	GetByAccount(ctx context.Context, accountID int64) (*Profile, error)
	Update(ctx context.Context, id int64, req UpdateProfileRequest) error
	AccountIDByProfile(ctx context.Context, id int64) (int64, error)
	ListForExport(ctx context.Context) ([]ExportRow, error)
	OldestProfileID(ctx context.Context) (int64, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
