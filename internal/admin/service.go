package admin

import (
	"context"

	"github.com/clinic-appointment-crm/clinic-service/internal/accounts"
)

// AccountStore is the slice of the account service the admin surfaces need:
// cross-role listing, status toggles and password resets.
type AccountStore interface {
	Get(ctx context.Context, accountID int64) (*accounts.Account, error)
	List(ctx context.Context, limit, offset int, search, role string) ([]accounts.Account, int, error)
	ToggleStatus(ctx context.Context, accountID int64, expectedRole string) (bool, error)
	ResetPassword(ctx context.Context, accountID int64, newPassword, expectedRole string) error
}

type Service struct {
	repo     RepositoryInterface
	accounts AccountStore
}

func NewService(repo RepositoryInterface, accountStore AccountStore) *Service {
	return &Service{repo: repo, accounts: accountStore}
}

func (s *Service) List(ctx context.Context, limit, offset int, search string) ([]Profile, int, error) {
	return s.repo.List(ctx, limit, offset, search)
}

func (s *Service) Get(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByAccount(ctx context.Context, accountID int64) (*Profile, error) {
	return s.repo.GetByAccount(ctx, accountID)
}

// ListActivationLogs returns the activation audit trail. Super-admin only,
// like the rest of the user-management surface.
func (s *Service) ListActivationLogs(ctx context.Context, callerAccountID int64, limit, offset int) ([]ActivationLogEntry, int, error) {
	if err := s.requireSuper(ctx, callerAccountID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListActivationLogs(ctx, limit, offset)
}

func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	return s.repo.GetDashboardStats(ctx)
}

// requireSuper resolves the caller's admin profile and checks the stored
// is_super flag. The token never carries the flag, so a role claim alone can
// never unlock these surfaces.
func (s *Service) requireSuper(ctx context.Context, callerAccountID int64) error {
	profile, err := s.repo.GetByAccount(ctx, callerAccountID)
	if err != nil {
		if err == ErrNotFound {
			return accounts.ErrNotSuperAdmin
		}
		return err
	}
	if !profile.IsSuper {
		return accounts.ErrNotSuperAdmin
	}
	return nil
}

// ListAccounts is the cross-role user-management listing. Super-admin only.
func (s *Service) ListAccounts(ctx context.Context, callerAccountID int64, limit, offset int, search, role string) ([]accounts.Account, int, error) {
	if err := s.requireSuper(ctx, callerAccountID); err != nil {
		return nil, 0, err
	}
	return s.accounts.List(ctx, limit, offset, search, role)
}

// ToggleAccountStatus flips any account's active flag. The account's actual
// role is resolved first so the role guard in the account store holds.
func (s *Service) ToggleAccountStatus(ctx context.Context, callerAccountID, accountID int64) (bool, error) {
	if err := s.requireSuper(ctx, callerAccountID); err != nil {
		return false, err
	}
	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return false, err
	}
	return s.accounts.ToggleStatus(ctx, accountID, acct.Role)
}

// ResetAccountPassword resets any account's password from the admin surface.
func (s *Service) ResetAccountPassword(ctx context.Context, callerAccountID, accountID int64, newPassword string) error {
	if err := s.requireSuper(ctx, callerAccountID); err != nil {
		return err
	}
	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return err
	}
	return s.accounts.ResetPassword(ctx, accountID, newPassword, acct.Role)
}
