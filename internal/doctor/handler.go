package doctor

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

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
	Doctors []Profile       `json:"doctors"`
	Meta    pagination.Meta `json:"meta"`
}

type ProfileResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Doctor  *Profile `json:"doctor,omitempty"`
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
		Doctors: profiles,
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
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Doctor: profile})
}

// Me returns the caller's own doctor profile.
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
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Doctor: profile})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	profile, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Message: "Doctor updated successfully",
		Doctor:  profile,
	})
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	isActive, err := h.service.ToggleStatus(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Doctor status updated",
		"isActive": isActive,
	})
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Doctor deactivated",
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req accounts.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if err := h.service.ResetPassword(r.Context(), id, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password reset successfully",
	})
}

// ExportCSV streams the doctor roster as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	export, err := h.service.ListForExport(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	filename := fmt.Sprintf("doctors_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"ID", "Username", "Email", "Specialization", "Phone", "Status", "Total Appointments"})
	for _, row := range export {
		status := "Inactive"
		if row.IsActive {
			status = "Active"
		}
		writer.Write([]string{
			strconv.FormatInt(row.ID, 10),
			row.Username,
			row.Email,
			row.Specialization,
			row.Phone,
			status,
			strconv.Itoa(row.TotalAppointments),
		})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Doctor id must be numeric")
		return 0, false
	}
	return id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound, accounts.ErrAccountNotFound:
		respondError(w, http.StatusNotFound, "not_found", "Doctor not found")
	case accounts.ErrEmailTaken:
		respondError(w, http.StatusConflict, "email_taken", "Email already exists")
	case accounts.ErrPasswordTooShort, accounts.ErrMissingEmail:
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case accounts.ErrRoleMismatch:
		respondError(w, http.StatusForbidden, "forbidden", "Account role does not match this operation")
	default:
		log.Printf("[ERROR] Unexpected doctor service error: %v", err)
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
