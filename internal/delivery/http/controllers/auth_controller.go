package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the response body for POST /auth/register and POST /auth/login
type TokenResponse struct {
	h.Envelope
	Token string `json:"token"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user with name, email and password and return a bearer token for it.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} controllers.TokenResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request (validation or user already exists)"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	_, token, err := c.Service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "User already exists")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSON(w, http.StatusCreated, TokenResponse{Envelope: h.OK("User registered successfully"), Token: token})
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a bearer token valid for 24 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 201 {object} controllers.TokenResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request (unknown email)"
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated (wrong password)"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "Invalid email or password")
		case errors.Is(err, domain.ErrWrongCredentials):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthenticated, "Wrong credentials!")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSON(w, http.StatusCreated, TokenResponse{Envelope: h.OK("Login successful"), Token: token})
}

// Probe godoc
// @Summary Check a bearer token
// @Description Responds 200 when the bearer token is valid.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.Envelope
// @Failure 401 {object} helpers.ErrorResponse "code: unauthenticated"
// @Failure 403 {object} helpers.ErrorResponse "code: forbidden"
// @Router /auth/probe [get]
func (c *AuthController) Probe(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, "Boom")
}
