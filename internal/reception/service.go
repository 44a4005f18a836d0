package reception

import "context"

// AccountManager is the slice of the account store this package needs for
// account-side mutations.
type AccountManager interface {
	ToggleStatus(ctx context.Context, accountID int64, expectedRole string) (bool, error)
	Deactivate(ctx context.Context, accountID int64, expectedRole string) error
	UpdateEmail(ctx context.Context, accountID int64, email string) error
	ResetPassword(ctx context.Context, accountID int64, newPassword, expectedRole string) error
}

type Service struct {
	repo     RepositoryInterface
	accounts AccountManager
}

func NewService(repo RepositoryInterface, accounts AccountManager) *Service {
	return &Service{repo: repo, accounts: accounts}
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

func (s *Service) Update(ctx context.Context, id int64, req UpdateProfileRequest) (*Profile, error) {
	if req.Email != nil {
		accountID, err := s.repo.AccountIDByProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.accounts.UpdateEmail(ctx, accountID, *req.Email); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ToggleStatus(ctx context.Context, id int64) (bool, error) {
	accountID, err := s.repo.AccountIDByProfile(ctx, id)
	if err != nil {
		return false, err
	}
	return s.accounts.ToggleStatus(ctx, accountID, "Reception")
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	accountID, err := s.repo.AccountIDByProfile(ctx, id)
	if err != nil {
		return err
	}
	return s.accounts.Deactivate(ctx, accountID, "Reception")
}

func (s *Service) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	accountID, err := s.repo.AccountIDByProfile(ctx, id)
	if err != nil {
		return err
	}
	return s.accounts.ResetPassword(ctx, accountID, newPassword, "Reception")
}

func (s *Service) ListForExport(ctx context.Context) ([]ExportRow, error) {
	return s.repo.ListForExport(ctx)
}
