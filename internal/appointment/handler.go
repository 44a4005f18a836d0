package appointment

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

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
	Success      bool            `json:"success"`
	Appointments []Appointment   `json:"appointments"`
	Meta         pagination.Meta `json:"meta"`
}

type AppointmentResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	Appointment *Appointment `json:"appointment,omitempty"`
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	ap, err := h.service.Book(r.Context(), pr, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, AppointmentResponse{
		Success:     true,
		Message:     "Appointment booked",
		Appointment: ap,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)
	params.Validate()

	appointments, total, err := h.service.ListForCaller(r.Context(), pr, params.Limit, params.CalculateOffset())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if appointments == nil {
		appointments = []Appointment{}
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Success:      true,
		Appointments: appointments,
		Meta:         params.CalculateMeta(total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ap, err := h.service.GetForCaller(r.Context(), pr, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AppointmentResponse{Success: true, Appointment: ap})
}

// UpdateStatus is front-desk only; the route guard enforces the permission.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	ap, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AppointmentResponse{
		Success:     true,
		Message:     "Appointment status updated",
		Appointment: ap,
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Appointment id must be numeric")
		return 0, false
	}
	return id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound:
		respondError(w, http.StatusNotFound, "not_found", "Appointment not found")
	case ErrDoctorNotFound, ErrPatientNotFound:
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case ErrMissingDoctor, ErrMissingPatient, ErrMissingTime, ErrTimeInPast, ErrMissingStatus:
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case ErrNoFrontDesk:
		respondError(w, http.StatusConflict, "no_front_desk", err.Error())
	case ErrCallerNotAllowed:
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		log.Printf("[ERROR] Unexpected appointment service error: %v", err)
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
