package patient

import "time"

// Profile is a patient profile joined with its account record.
type Profile struct {
	ID          int64      `json:"id"`
	AccountID   int64      `json:"accountId"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UpdateProfileRequest carries optional field updates. Email changes go
// through the account store so uniqueness is enforced there.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // Format: YYYY-MM-DD
	Gender      *string `json:"gender,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
}
