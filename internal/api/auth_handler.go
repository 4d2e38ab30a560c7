package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/service/auth"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
	"github.com/FavasCherukunnu/ecomm-api/internal/validation"
)

// LoginRequest is the JSON body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler handles login and identity lookup.
type AuthHandler struct {
	users      store.UserStore
	jwtService auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users store.UserStore, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
	}
}

// Login handles POST /api/login. Unknown emails and wrong passwords get
// the same answer so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// An undecodable body validates like an empty one.
	var req LoginRequest
	_ = shared.DecodeJSON(r, &req)

	failures := validation.Evaluate(r.Context(), []validation.Field{
		{Name: "email", Value: &req.Email, Rules: []validation.Rule{validation.Required("Email")}},
		{Name: "password", Value: &req.Password, Rules: []validation.Rule{validation.Required("Password")}},
	})
	if failures != nil {
		shared.RespondWithValidationErrors(w, r, failures)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
				"Invalid email or password", err, shared.WithElevatedLogLevel())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	// Stored credentials are compared directly, in constant time.
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Invalid email or password", errors.New("password mismatch"),
			shared.WithElevatedLogLevel())
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Envelope: shared.Envelope{Success: true, Message: "Login successful"},
		Token:    token,
	})
}

// Me handles GET /api/me, resolving the guard's identity claim against
// the user store.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondStoreError(w, r, err, "User not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MeResponse{
		Envelope: shared.Envelope{Success: true, Message: "User fetched successfully"},
		User:     UserInfo{ID: user.ID, Email: user.Email},
	})
}
