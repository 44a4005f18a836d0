package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/clinic-appointment-crm/clinic-service/internal/accounts"
	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ListResponse struct {
	Success bool            `json:"success"`
	Admins  []Profile       `json:"admins"`
	Meta    pagination.Meta `json:"meta"`
}

type AccountsResponse struct {
	Success  bool               `json:"success"`
	Accounts []accounts.Account `json:"accounts"`
	Meta     pagination.Meta    `json:"meta"`
}

type ActivationLogResponse struct {
	Success bool                 `json:"success"`
	Logs    []ActivationLogEntry `json:"logs"`
	Meta    pagination.Meta      `json:"meta"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	params.Validate()

	profiles, total, err := h.service.List(r.Context(), params.Limit, params.CalculateOffset(), params.Search)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	if profiles == nil {
		profiles = []Profile{}
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Success: true,
		Admins:  profiles,
		Meta:    params.CalculateMeta(total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"admin":   profile,
	})
}

// Me returns the caller's own admin profile, including the super flag the
// frontend uses to show the admin-registration surface.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	profile, err := h.service.GetByAccount(r.Context(), pr.AccountID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"admin":   profile,
	})
}

// ListAccounts is the cross-role user-management view. The role query param
// filters to one role; "all" or empty returns everything.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)
	params.Validate()
	role := r.URL.Query().Get("role")

	accts, total, err := h.service.ListAccounts(r.Context(), pr.AccountID, params.Limit, params.CalculateOffset(), params.Search, role)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if accts == nil {
		accts = []accounts.Account{}
	}

	respondJSON(w, http.StatusOK, AccountsResponse{
		Success:  true,
		Accounts: accts,
		Meta:     params.CalculateMeta(total),
	})
}

// ToggleAccountStatus flips the active flag of any account from the admin
// user-management view.
func (h *Handler) ToggleAccountStatus(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	isActive, err := h.service.ToggleAccountStatus(r.Context(), pr.AccountID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Account status updated",
		"isActive": isActive,
	})
}

func (h *Handler) ResetAccountPassword(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req accounts.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if err := h.service.ResetAccountPassword(r.Context(), pr.AccountID, id, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset successfully",
	})
}

// ActivationLogs returns the admin activation audit trail.
func (h *Handler) ActivationLogs(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)
	params.Validate()

	logs, total, err := h.service.ListActivationLogs(r.Context(), pr.AccountID, params.Limit, params.CalculateOffset())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []ActivationLogEntry{}
	}

	respondJSON(w, http.StatusOK, ActivationLogResponse{
		Success: true,
		Logs:    logs,
		Meta:    params.CalculateMeta(total),
	})
}

// DashboardStats returns the landing-page counters.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Id must be numeric")
		return 0, false
	}
	return id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		respondError(w, http.StatusNotFound, "not_found", "Admin not found")
	case accounts.ErrAccountNotFound:
		respondError(w, http.StatusNotFound, "not_found", "Account not found")
	case accounts.ErrPasswordTooShort:
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case accounts.ErrRoleMismatch:
		respondError(w, http.StatusForbidden, "forbidden", "Account role does not match this operation")
	case accounts.ErrNotSuperAdmin:
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		log.Printf("[ERROR] Unexpected admin service error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
