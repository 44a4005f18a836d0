package accounts

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
)

type Handler struct {
	service ServiceInterface
	authCfg auth.Config
}

func NewHandler(service ServiceInterface, authCfg auth.Config) *Handler {
	return &Handler{
		service: service,
		authCfg: authCfg,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type VerifyResponse struct {
	Success   bool   `json:"success"`
	AccountID int64  `json:"accountId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Login authenticates a credential pair. On success the token is returned in
// the body and also set as an HTTP-only cookie for browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.setTokenCookie(w, resp)
	respondJSON(w, http.StatusOK, resp)
}

// Logout clears the token cookie. Bearer clients simply discard the token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.authCfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// RegisterPatient is the public self-service registration endpoint.
func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	resp, err := h.service.RegisterPatient(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// RegisterDoctor creates a doctor account.
func (h *Handler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	resp, err := h.service.RegisterDoctor(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// RegisterReception creates a front-desk account. Admin-only via route guard.
func (h *Handler) RegisterReception(w http.ResponseWriter, r *http.Request) {
	var req RegisterReceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	resp, err := h.service.RegisterReception(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// RegisterAdmin creates an admin account. The service verifies the caller is
// a super admin against the database.
func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	resp, err := h.service.RegisterAdmin(r.Context(), req, pr.AccountID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// Verify reports the identity carried by a valid token. Reaching this handler
// means the auth middleware already accepted the token.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, VerifyResponse{
		Success:   true,
		AccountID: pr.AccountID,
		Username:  pr.Username,
		Email:     pr.Email,
		Role:      pr.Role.String(),
	})
}

// Me returns the caller's account record from the store, including activity
// flag and timestamps the token does not carry.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	acct, err := h.service.Get(r.Context(), pr.AccountID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"account": acct,
	})
}

// Refresh re-issues a token for an authenticated, still-active caller.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	pr, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	resp, err := h.service.Refresh(r.Context(), pr.AccountID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.setTokenCookie(w, resp)
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, resp *AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.Expiration,
		HttpOnly: true,
		Secure:   h.authCfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// respondServiceError maps service sentinels to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidCredentials:
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials or account is inactive")
	case ErrUsernameTaken:
		respondError(w, http.StatusConflict, "username_taken", "Username already exists")
	case ErrEmailTaken:
		respondError(w, http.StatusConflict, "email_taken", "Email already exists")
	case ErrAccountNotFound:
		respondError(w, http.StatusNotFound, "not_found", "Account not found")
	case ErrNotSuperAdmin:
		respondError(w, http.StatusForbidden, "forbidden", "Super admin privileges required")
	case ErrRoleMismatch:
		respondError(w, http.StatusForbidden, "forbidden", "Account role does not match this operation")
	case ErrMissingUsername, ErrMissingEmail, ErrMissingPassword, ErrMissingFullName,
		ErrMissingSpecialization, ErrPasswordTooShort:
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		log.Printf("[ERROR] Unexpected account service error: %v", err)
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
