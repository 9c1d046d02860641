package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ivstoyanov/rolodex/internal/services"
	pkghttp "github.com/ivstoyanov/rolodex/pkg/http"
)

// AuthServiceInterface defines the registration and login operations
type AuthServiceInterface interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AccountDetails, error)
	Login(ctx context.Context, email, password string) (*services.LoginView, error)
}

// AuthHandler serves /auth/register and /auth/login.
type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse wraps the created account with a confirmation message.
type RegisterResponse struct {
	Message string                   `json:"message"`
	User    *services.AccountDetails `json:"user"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	view, err := h.service.Register(r.Context(), services.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		ClientIP:    pkghttp.ExtractClientIP(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrPasswordPolicy),
			errors.Is(err, services.ErrInvalidDate):
			pkghttp.WriteBadRequest(w, err.Error())
		default:
			mapServiceError(w, err)
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "user registered successfully",
		User:    view,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	view, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, view)
}
