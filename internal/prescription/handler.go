package prescription

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
	Success       bool            `json:"success"`
	Prescriptions []Prescription  `json:"prescriptions"`
	Meta          pagination.Meta `json:"meta"`
}

type PrescriptionResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Prescription *Prescription `json:"prescription,omitempty"`
}

// Issue is doctor-only; the route guard enforces the permission and the
// service pins authorship to the appointment's doctor.
func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	rx, err := h.service.Issue(r.Context(), pr, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, PrescriptionResponse{
		Success:      true,
		Message:      "Prescription issued",
		Prescription: rx,
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

	prescriptions, total, err := h.service.ListForCaller(r.Context(), pr, params.Limit, params.CalculateOffset())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if prescriptions == nil {
		prescriptions = []Prescription{}
	}

	respondJSON(w, http.StatusOK, ListResponse{
		Success:       true,
		Prescriptions: prescriptions,
		Meta:          params.CalculateMeta(total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Prescription id must be numeric")
		return
	}

	rx, err := h.service.GetForCaller(r.Context(), pr, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PrescriptionResponse{Success: true, Prescription: rx})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNotFound, ErrAppointmentNotFound:
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case ErrNotAppointmentDoctor, ErrCallerNotAllowed:
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case ErrMissingAppointment, ErrMissingMedication:
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case ErrDoctorProfileMissing, ErrPatientProfileMissing:
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("[ERROR] Unexpected prescription service error: %v", err)
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
