package accounts

import "time"

// Account is the credential-store record: one per user, exactly one role,
// never physically deleted.
type Account struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// LoginRequest is the credential pair presented at login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterPatientRequest creates an account plus patient profile.
type RegisterPatientRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"` // Format: YYYY-MM-DD
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// RegisterDoctorRequest creates an account plus doctor profile.
type RegisterDoctorRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	Specialization       string `json:"specialization"`
	AvailabilitySchedule string `json:"availabilitySchedule"`
	Phone                string `json:"phone"`
}

// RegisterReceptionRequest creates an account plus reception profile.
// Admin-only operation.
type RegisterReceptionRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// RegisterAdminRequest creates an account plus admin profile and appends an
// activation-log entry. Super-admin-only operation.
type RegisterAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	IsSuper  bool   `json:"isSuper"`
}

// ResetPasswordRequest replaces an account's password hash.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// AuthResponse is returned from login, registration and refresh.
type AuthResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Token      string    `json:"token,omitempty"`
	Role       string    `json:"role,omitempty"`
	AccountID  int64     `json:"accountId,omitempty"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	Expiration time.Time `json:"expiration,omitempty"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return ErrMissingUsername
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

func (r *RegisterPatientRequest) Validate() error {
	if err := validateCredentials(r.Username, r.Email, r.Password); err != nil {
		return err
	}
	if r.FullName == "" {
		return ErrMissingFullName
	}
	return nil
}

func (r *RegisterDoctorRequest) Validate() error {
	if err := validateCredentials(r.Username, r.Email, r.Password); err != nil {
		return err
	}
	if r.Specialization == "" {
		return ErrMissingSpecialization
	}
	return nil
}

func (r *RegisterReceptionRequest) Validate() error {
	if err := validateCredentials(r.Username, r.Email, r.Password); err != nil {
		return err
	}
	if r.FullName == "" {
		return ErrMissingFullName
	}
	return nil
}

func (r *RegisterAdminRequest) Validate() error {
	if err := validateCredentials(r.Username, r.Email, r.Password); err != nil {
		return err
	}
	if r.FullName == "" {
		return ErrMissingFullName
	}
	return nil
}

func validateCredentials(username, email, password string) error {
	if username == "" {
		return ErrMissingUsername
	}
	if email == "" {
		return ErrMissingEmail
	}
	if password == "" {
		return ErrMissingPassword
	}
	return nil
}
