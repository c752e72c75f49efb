package http

import (
	"net/http"

	"github.com/billpoint/billpoint/internal/auth/service"
	"github.com/billpoint/billpoint/pkg/httpx"
	"github.com/billpoint/billpoint/pkg/slogx"
)

type LogoutHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke the presented access token
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	messageResponse	"message"
//	@Failure		401	{object}	messageResponse	"message"
//	@Failure		500	{object}	messageResponse	"message"
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// AuthnMiddleware has already verified the token.
	token, ok := httpx.RawTokenFromContext(ctx)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	if err := h.TokenService.Revoke(ctx, token); err != nil {
		log.Error("token revoke failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeMessage(w, http.StatusOK, "Logout successful")
}
