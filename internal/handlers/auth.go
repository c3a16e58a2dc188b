package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaughan-dsouza/medvault/internal/metrics"
	"github.com/vaughan-dsouza/medvault/internal/middleware"
	"github.com/vaughan-dsouza/medvault/internal/models"
	"github.com/vaughan-dsouza/medvault/internal/service"
	"github.com/vaughan-dsouza/medvault/internal/utils"
)

// AuthService is the part of service.AuthService the handlers use.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Validate(ctx context.Context, token string) (*models.User, error)
}

type AuthHandler struct {
	svc     AuthService
	metrics *metrics.Auth
	log     *slog.Logger
}

func NewAuthHandler(svc AuthService, m *metrics.Auth, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m, log: log}
}

// ----------- Request/Response DTOs -------------

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	DateOfBirth      *string `json:"dateOfBirth"`
	EmergencyContact *string `json:"emergencyContact"`
	BloodGroup       *string `json:"bloodGroup"`
	Specialization   *string `json:"specialization"`
	LicenseNumber    *string `json:"licenseNumber"`
}

func (r registerReq) input() service.RegisterInput {
	return service.RegisterInput{
		Email:            r.Email,
		Password:         r.Password,
		Name:             r.Name,
		Role:             r.Role,
		Phone:            r.Phone,
		Address:          r.Address,
		DateOfBirth:      r.DateOfBirth,
		EmergencyContact: r.EmergencyContact,
		BloodGroup:       r.BloodGroup,
		Specialization:   r.Specialization,
		LicenseNumber:    r.LicenseNumber,
	}
}

type validateResp struct {
	Valid bool               `json:"valid"`
	User  *models.PublicUser `json:"user,omitempty"`
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.metrics.ObserveLogin(metrics.OutcomeInvalid)
		utils.Text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		h.metrics.ObserveLogin(metrics.OutcomeFailure)
		utils.Text(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "login failed", "error", err)
		h.metrics.ObserveLogin(metrics.OutcomeError)
		utils.Text(w, http.StatusBadRequest, "Login failed")
		return
	}

	h.metrics.ObserveLogin(metrics.OutcomeSuccess)
	utils.JSON(w, http.StatusOK, res)
}

// -------------- REGISTER ---------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		h.metrics.ObserveRegistration("", metrics.OutcomeInvalid)
		utils.Text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role := ""
	if parsed, err := models.ParseRole(req.Role); err == nil {
		role = parsed.Lower()
	}

	user, err := h.svc.Register(r.Context(), req.input())
	switch {
	case err == nil:
		h.metrics.ObserveRegistration(role, metrics.OutcomeSuccess)
		utils.JSON(w, http.StatusOK, user.Public())
	case errors.Is(err, models.ErrDuplicateEmail):
		h.metrics.ObserveRegistration(role, metrics.OutcomeDuplicate)
		utils.Text(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, models.ErrInvalidRole):
		h.metrics.ObserveRegistration("", metrics.OutcomeInvalid)
		utils.Text(w, http.StatusBadRequest, "Invalid role: "+req.Role)
	case errors.Is(err, models.ErrInvalidInput):
		h.metrics.ObserveRegistration(role, metrics.OutcomeInvalid)
		utils.Text(w, http.StatusBadRequest, "Email, password, name and role are required")
	default:
		h.log.ErrorContext(r.Context(), "registration failed", "error", err)
		h.metrics.ObserveRegistration(role, metrics.OutcomeError)
		utils.Text(w, http.StatusInternalServerError, "Registration failed")
	}
}

// -------------- VALIDATE ---------------------

// Validate never answers with a 5xx; any failure is {"valid":false}.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		h.metrics.ObserveValidation(metrics.OutcomeFailure)
		utils.JSON(w, http.StatusUnauthorized, validateResp{Valid: false})
		return
	}

	user, err := h.svc.Validate(r.Context(), token)
	if err != nil {
		h.metrics.ObserveValidation(metrics.OutcomeFailure)
		utils.JSON(w, http.StatusUnauthorized, validateResp{Valid: false})
		return
	}

	pub := user.Public()
	h.metrics.ObserveValidation(metrics.OutcomeSuccess)
	utils.JSON(w, http.StatusOK, validateResp{Valid: true, User: &pub})
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.Text(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.JSON(w, http.StatusOK, user.Public())
}
