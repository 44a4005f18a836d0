package appointment

import (
	"context"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
)

// ServiceInterface defines the contract for the appointment ledger
type ServiceInterface interface {
	Book(ctx context.Context, pr *auth.Principal, req BookRequest) (*Appointment, error)
	ListForCaller(ctx context.Context, pr *auth.Principal, limit, offset int) ([]Appointment, int, error)
	GetForCaller(ctx context.Context, pr *auth.Principal, id int64) (*Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Appointment, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
