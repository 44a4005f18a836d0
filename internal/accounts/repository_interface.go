package accounts

import "context"

// RepositoryInterface defines the contract for credential-store persistence
type RepositoryInterface interface {
	CreatePatient(ctx context.Context, req RegisterPatientRequest, passwordHash string) (int64, int64, error)
	CreateDoctor(ctx context.Context, req RegisterDoctorRequest, passwordHash string) (int64, int64, error)
	CreateReception(ctx context.Context, req RegisterReceptionRequest, passwordHash string) (int64, int64, error)
	CreateAdmin(ctx context.Context, req RegisterAdminRequest, passwordHash string, activatedBy int64) (int64, int64, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailExistsForOther(ctx context.Context, email string, accountID int64) (bool, error)

	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	List(ctx context.Context, limit, offset int, search, role string) ([]Account, int, error)

	UpdateLastLogin(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64, expectedRole string) (bool, error)
	Deactivate(ctx context.Context, id int64, expectedRole string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error

	AdminProfileByAccount(ctx context.Context, accountID int64) (int64, bool, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
