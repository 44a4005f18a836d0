package prescription

import (
	"context"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
)

// ServiceInterface defines the contract for the prescription ledger
type ServiceInterface interface {
	Issue(ctx context.Context, pr *auth.Principal, req IssueRequest) (*Prescription, error)
	ListForCaller(ctx context.Context, pr *auth.Principal, limit, offset int) ([]Prescription, int, error)
	GetForCaller(ctx context.Context, pr *auth.Principal, id int64) (*Prescription, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
