package reception

import "time"

// Profile is a front-desk profile joined with its account record.
type Profile struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportRow is one line of the receptionist CSV export, including the count
// of appointments the desk has handled.
type ExportRow struct {
	ID                  int64
	Username            string
	FullName            string
	Email               string
	Phone               string
	IsActive            bool
	AppointmentsHandled int
}

// UpdateProfileRequest carries optional field updates. Email changes go
// through the account store.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}
