package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/markitup/markitup-api/internal/httputil"
	"github.com/markitup/markitup-api/internal/logging"
	"github.com/markitup/markitup-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful signup or login response
type AuthResponse struct {
	Message     string          `json:"message"`
	AccessToken string          `json:"access_token"`
	User        user.PublicUser `json:"user"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Signup handles account creation
// @Summary      Create a new account
// @Description  Register with name, email and password and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup fields"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse "Missing fields or email already exists"
// @Failure      500 {object} ErrorResponse "Storage failure"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	result, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			logger.Warn("signup failed: missing fields")
			httputil.RespondErrorWithCode(w, "Missing required fields", httputil.CodeMissingFields, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrEmailExists) {
			logger.Warn("signup failed: email already exists", "email", req.Email)
			httputil.RespondErrorWithCode(w, "Email already exists", httputil.CodeEmailExists, http.StatusBadRequest)
			return
		}
		logger.Error("signup failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Failed to create user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, AuthResponse{
		Message:     "User created successfully",
		AccessToken: result.Token,
		User:        result.User,
	}, http.StatusCreated)
}

// Login handles credential verification
// @Summary      Log in
// @Description  Authenticate with email and password and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ErrorResponse "Missing email or password"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrMissingCredentials) {
			logger.Warn("login failed: missing credentials")
			httputil.RespondErrorWithCode(w, "Missing email or password", httputil.CodeMissingFields, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			// One message for unknown email and wrong password alike.
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "Invalid email or password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, AuthResponse{
		Message:     "Login successful",
		AccessToken: result.Token,
		User:        result.User,
	}, http.StatusOK)
}

// Me resolves the identity behind a bearer token
// @Summary      Current user
// @Description  Return the account the presented bearer token belongs to
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.PublicUser
// @Failure      401 {object} ErrorResponse "Missing, invalid or expired token"
// @Failure      404 {object} ErrorResponse "User no longer exists"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token, err := BearerToken(r)
	if err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
		return
	}

	pub, err := h.service.ResolveIdentity(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			httputil.RespondErrorWithCode(w, "Token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrInvalidToken) {
			httputil.RespondErrorWithCode(w, "Invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			// Token was valid but the account is gone.
			logger.Warn("identity resolution failed: user not found")
			httputil.RespondErrorWithCode(w, "User not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("identity resolution failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Failed to resolve identity", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, pub, http.StatusOK)
}
