package admin

import "time"

// Profile is an admin profile joined with its account record.
type Profile struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	IsSuper   bool      `json:"isSuper"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivationLogEntry records which admin activated which, with display names
// resolved for the audit view.
type ActivationLogEntry struct {
	ID                 int64     `json:"id"`
	ActivatedAdminID   int64     `json:"activatedAdminId"`
	ActivatedAdminName string    `json:"activatedAdminName"`
	ActivatedByID      int64     `json:"activatedById"`
	ActivatedByName    string    `json:"activatedByName"`
	ActivatedAt        time.Time `json:"activatedAt"`
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TodaysAppointments  int `json:"todaysAppointments"`
	PendingAppointments int `json:"pendingAppointments"`
	TotalPatients       int `json:"totalPatients"`
	TotalDoctors        int `json:"totalDoctors"`
	TotalReceptionists  int `json:"totalReceptionists"`
	TotalAdmins         int `json:"totalAdmins"`
	ActiveAccounts      int `json:"activeAccounts"`
}
