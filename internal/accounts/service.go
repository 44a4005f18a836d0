package accounts

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/messaging"
	"golang.org/x/crypto/bcrypt"
)

// DefaultMinPasswordLength applies when no explicit policy is configured.
const DefaultMinPasswordLength = 6

// MetricsRecorder records auth business metrics. Nil-safe in the service.
type MetricsRecorder interface {
	RecordRegistration(ctx context.Context, role string, success bool)
	RecordLogin(ctx context.Context, success bool)
}

type Service struct {
	repo        RepositoryInterface
	tokens      *auth.TokenService
	publisher   messaging.PublisherInterface
	metrics     MetricsRecorder
	minPassword int
}

func NewService(repo RepositoryInterface, tokens *auth.TokenService, publisher messaging.PublisherInterface, metrics MetricsRecorder, minPasswordLength int) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = DefaultMinPasswordLength
	}
	return &Service{
		repo:        repo,
		tokens:      tokens,
		publisher:   publisher,
		metrics:     metrics,
		minPassword: minPasswordLength,
	}
}

// Login verifies the credential pair and issues a signed token. Missing
// accounts, inactive accounts and wrong passwords all produce the same
// ErrInvalidCredentials so the response never reveals which one it was.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acct, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == ErrAccountNotFound {
			s.recordLogin(ctx, false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !acct.IsActive {
		s.recordLogin(ctx, false)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		s.recordLogin(ctx, false)
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, acct.ID); err != nil {
		// A stale last_login timestamp must not block the login itself.
		log.Printf("Warning: failed to update last login for account %d: %v", acct.ID, err)
	}

	resp, err := s.issueToken(acct, "Login successful")
	if err != nil {
		return nil, err
	}
	s.recordLogin(ctx, true)
	return resp, nil
}

// RegisterPatient is the only self-service registration path. The account and
// patient profile are created atomically.
func (s *Service) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*AuthResponse, error) {
	if err := s.validateRegistration(ctx, req.Username, req.Email, req.Password, &req); err != nil {
		s.recordRegistration(ctx, "Patient", false)
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	accountID, profileID, err := s.repo.CreatePatient(ctx, req, hash)
	if err != nil {
		s.recordRegistration(ctx, "Patient", false)
		return nil, err
	}

	s.publishRegistered(ctx, accountID, profileID, req.Username, req.Email, "Patient")
	s.recordRegistration(ctx, "Patient", true)
	return s.registrationResponse(accountID, req.Username, req.Email, "Patient")
}

// RegisterDoctor creates a doctor account. Self-service, like patient
// registration.
func (s *Service) RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*AuthResponse, error) {
	if err := s.validateRegistration(ctx, req.Username, req.Email, req.Password, &req); err != nil {
		s.recordRegistration(ctx, "Doctor", false)
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	accountID, profileID, err := s.repo.CreateDoctor(ctx, req, hash)
	if err != nil {
		s.recordRegistration(ctx, "Doctor", false)
		return nil, err
	}

	s.publishRegistered(ctx, accountID, profileID, req.Username, req.Email, "Doctor")
	s.recordRegistration(ctx, "Doctor", true)
	return s.registrationResponse(accountID, req.Username, req.Email, "Doctor")
}

// RegisterReception creates a front-desk account. Admin-only.
func (s *Service) RegisterReception(ctx context.Context, req RegisterReceptionRequest) (*AuthResponse, error) {
	if err := s.validateRegistration(ctx, req.Username, req.Email, req.Password, &req); err != nil {
		s.recordRegistration(ctx, "Reception", false)
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	accountID, profileID, err := s.repo.CreateReception(ctx, req, hash)
	if err != nil {
		s.recordRegistration(ctx, "Reception", false)
		return nil, err
	}

	s.publishRegistered(ctx, accountID, profileID, req.Username, req.Email, "Reception")
	s.recordRegistration(ctx, "Reception", true)
	return s.registrationResponse(accountID, req.Username, req.Email, "Reception")
}

// RegisterAdmin creates an admin account. Only a super admin may call it; the
// caller's super flag is resolved from the database, never from the token.
// An activation-log entry is written in the same transaction.
func (s *Service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest, callerAccountID int64) (*AuthResponse, error) {
	callerProfileID, isSuper, err := s.repo.AdminProfileByAccount(ctx, callerAccountID)
	if err != nil {
		return nil, err
	}
	if !isSuper {
		return nil, ErrNotSuperAdmin
	}

	if err := s.validateRegistration(ctx, req.Username, req.Email, req.Password, &req); err != nil {
		s.recordRegistration(ctx, "Admin", false)
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	accountID, profileID, err := s.repo.CreateAdmin(ctx, req, hash, callerProfileID)
	if err != nil {
		s.recordRegistration(ctx, "Admin", false)
		return nil, err
	}

	s.publishRegistered(ctx, accountID, profileID, req.Username, req.Email, "Admin")
	s.publishEvent(ctx, messaging.EventAdminActivated, messaging.AdminActivatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAdminActivated),
		Data: messaging.AdminActivatedData{
			ActivatedAdminID:   profileID,
			ActivatedByAdminID: callerProfileID,
			ActivatedAt:        time.Now().UTC(),
		},
	})
	s.recordRegistration(ctx, "Admin", true)
	return s.registrationResponse(accountID, req.Username, req.Email, "Admin")
}

// Refresh re-issues a token for an authenticated caller. The account is
// re-checked so a deactivation takes effect at the next refresh.
func (s *Service) Refresh(ctx context.Context, accountID int64) (*AuthResponse, error) {
	acct, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if err == ErrAccountNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !acct.IsActive {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(acct, "Token refreshed")
}

// Get returns the account record for the given id.
func (s *Service) Get(ctx context.Context, accountID int64) (*Account, error) {
	return s.repo.GetByID(ctx, accountID)
}

// List returns accounts for the admin user-management view.
func (s *Service) List(ctx context.Context, limit, offset int, search, role string) ([]Account, int, error) {
	return s.repo.List(ctx, limit, offset, search, role)
}

// ToggleStatus flips an account's active flag, constrained to the expected
// role, and publishes a status-change event.
func (s *Service) ToggleStatus(ctx context.Context, accountID int64, expectedRole string) (bool, error) {
	isActive, err := s.repo.ToggleStatus(ctx, accountID, expectedRole)
	if err != nil {
		return false, err
	}
	s.publishStatusChanged(ctx, accountID, expectedRole, isActive)
	return isActive, nil
}

// Deactivate soft-deactivates an account, constrained to the expected role.
func (s *Service) Deactivate(ctx context.Context, accountID int64, expectedRole string) error {
	if err := s.repo.Deactivate(ctx, accountID, expectedRole); err != nil {
		return err
	}
	s.publishStatusChanged(ctx, accountID, expectedRole, false)
	return nil
}

// UpdateEmail changes the account email after checking that no other account
// uses it. The unique constraint remains the final guard.
func (s *Service) UpdateEmail(ctx context.Context, accountID int64, email string) error {
	if email == "" {
		return ErrMissingEmail
	}
	taken, err := s.repo.EmailExistsForOther(ctx, email, accountID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return s.repo.UpdateEmail(ctx, accountID, email)
}

// ResetPassword replaces the password hash for an account, constrained to the
// expected role.
func (s *Service) ResetPassword(ctx context.Context, accountID int64, newPassword, expectedRole string) error {
	if len(newPassword) < s.minPassword {
		return ErrPasswordTooShort
	}

	acct, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if acct.Role != expectedRole {
		return ErrRoleMismatch
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return err
	}

	s.publishEvent(ctx, messaging.EventPasswordReset, messaging.PasswordResetEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPasswordReset),
		Data: messaging.PasswordResetData{
			AccountID: accountID,
			Role:      expectedRole,
			ResetAt:   time.Now().UTC(),
		},
	})
	return nil
}

func (s *Service) validateRegistration(ctx context.Context, username, email, password string, req interface{ Validate() error }) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if len(password) < s.minPassword {
		return ErrPasswordTooShort
	}

	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) issueToken(acct *Account, message string) (*AuthResponse, error) {
	token, expiration, err := s.tokens.Issue(auth.TokenIdentity{
		AccountID: acct.ID,
		Username:  acct.Username,
		Email:     acct.Email,
		Role:      acct.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{
		Success:    true,
		Message:    message,
		Token:      token,
		Role:       acct.Role,
		AccountID:  acct.ID,
		Username:   acct.Username,
		Email:      acct.Email,
		Expiration: expiration,
	}, nil
}

func (s *Service) registrationResponse(accountID int64, username, email, role string) (*AuthResponse, error) {
	return s.issueToken(&Account{
		ID:       accountID,
		Username: username,
		Email:    email,
		Role:     role,
	}, "Registration successful")
}

func (s *Service) publishRegistered(ctx context.Context, accountID, profileID int64, username, email, role string) {
	s.publishEvent(ctx, messaging.EventAccountRegistered, messaging.AccountRegisteredEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAccountRegistered),
		Data: messaging.AccountRegisteredData{
			AccountID: accountID,
			ProfileID: profileID,
			Username:  username,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
	})
}

func (s *Service) publishStatusChanged(ctx context.Context, accountID int64, role string, isActive bool) {
	oldStatus, newStatus := "active", "inactive"
	if isActive {
		oldStatus, newStatus = "inactive", "active"
	}
	s.publishEvent(ctx, messaging.EventAccountStatusChanged, messaging.AccountStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAccountStatusChanged),
		Data: messaging.AccountStatusChangedData{
			AccountID: accountID,
			Role:      role,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			ChangedAt: time.Now().UTC(),
		},
	})
}

func (s *Service) publishEvent(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

func (s *Service) recordLogin(ctx context.Context, success bool) {
	if s.metrics != nil {
		s.metrics.RecordLogin(ctx, success)
	}
}

func (s *Service) recordRegistration(ctx context.Context, role string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordRegistration(ctx, role, success)
	}
}
