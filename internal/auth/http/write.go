package http

import (
	"errors"
	"net/http"

	"github.com/hexfray/authd/internal/auth/service"
	"github.com/hexfray/authd/pkg/httpx"
	"github.com/hexfray/authd/pkg/slogx"
)

type WriteHandler struct {
	AuthService *service.AuthService
}

type writeRequest struct {
	Content string `json:"content"`
}

type writeResponse struct {
	Message string              `json:"message"`
	Result  service.WriteResult `json:"result"`
}

// ServeHTTP handles the authenticated write operation. It is a length-echo
// stub: nothing is persisted.
//
//	@Summary		Authenticated write
//	@Description	Confirms the caller is an authenticated, existing user and echoes the content length.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		writeRequest	true	"Content to measure"
//	@Success		200		{object}	writeResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Token subject no longer exists, or malformed body"
//	@Failure		401		{object}	nil					"Missing, invalid or expired token"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/auth/write [post].
func (h *WriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var req writeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.AuthService.Write(ctx, userID, req.Content)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, "User not found")
		return
	default:
		log.Error("write failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, writeResponse{
		Message: "Content written successfully",
		Result:  result,
	})
}
