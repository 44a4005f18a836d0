package accounts

import "errors"

var (
	ErrMissingUsername       = errors.New("username is required")
	ErrMissingEmail          = errors.New("email is required")
	ErrMissingPassword       = errors.New("password is required")
	ErrMissingFullName       = errors.New("full name is required")
	ErrMissingSpecialization = errors.New("specialization is required")
	ErrPasswordTooShort      = errors.New("password does not meet the minimum length")

	// ErrInvalidCredentials deliberately covers missing users, inactive
	// accounts and wrong passwords alike so callers cannot enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid credentials or account is inactive")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	ErrAccountNotFound = errors.New("account not found")
	ErrRoleMismatch    = errors.New("account role does not match this management surface")
	ErrNotSuperAdmin   = errors.New("super admin privileges required")
)
