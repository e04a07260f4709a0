package http

import (
	"errors"
	"net/http"

	"github.com/hexfray/authd/internal/auth/domain"
	"github.com/hexfray/authd/internal/auth/service"
	"github.com/hexfray/authd/pkg/httpx"
	"github.com/hexfray/authd/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required,max=255"`
}

type registerResponse struct {
	Message string          `json:"message"`
	User    domain.UserView `json:"user"`
}

// ServeHTTP handles user registration.
//
//	@Summary		Register a new user
//	@Description	Creates a user account from email, password and full name. The password must be at least 8 characters.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration details"
//	@Success		201		{object}	registerResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Weak password, duplicate email, or malformed body"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.AuthService.Register(ctx, req.Email, req.Password, req.FullName)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	case errors.Is(err, service.ErrDuplicateEmail):
		httpx.WriteError(w, http.StatusBadRequest, "User with this email already exists")
		return
	default:
		log.Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    user,
	})
}
