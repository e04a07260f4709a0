package http

import (
	"errors"
	"net/http"

	"github.com/hexfray/authd/internal/auth/service"
	"github.com/hexfray/authd/pkg/httpx"
	"github.com/hexfray/authd/pkg/slogx"
)

type ProfileHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP returns the authenticated user's profile.
//
//	@Summary		Get the authenticated user's profile
//	@Description	Returns the public view (id, email, fullName) for the token's subject. The password hash is never included.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.UserView
//	@Failure		400	{object}	httpx.ErrorResponse	"Token subject no longer exists"
//	@Failure		401	{object}	nil					"Missing, invalid or expired token"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/auth/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	user, err := h.AuthService.GetProfile(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "User not found")
		return
	default:
		log.Error("profile lookup failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}
