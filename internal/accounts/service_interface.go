package accounts

import "context"

// ServiceInterface defines the contract for the auth and account-management
// business logic
type ServiceInterface interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*AuthResponse, error)
	RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*AuthResponse, error)
	RegisterReception(ctx context.Context, req RegisterReceptionRequest) (*AuthResponse, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest, callerAccountID int64) (*AuthResponse, error)
	Refresh(ctx context.Context, accountID int64) (*AuthResponse, error)
	Get(ctx context.Context, accountID int64) (*Account, error)
	List(ctx context.Context, limit, offset int, search, role string) ([]Account, int, error)
	ToggleStatus(ctx context.Context, accountID int64, expectedRole string) (bool, error)
	Deactivate(ctx context.Context, accountID int64, expectedRole string) error
	UpdateEmail(ctx context.Context, accountID int64, email string) error
	ResetPassword(ctx context.Context, accountID int64, newPassword, expectedRole string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
