package http

import (
	"errors"
	"net/http"

	"github.com/billpoint/billpoint/internal/auth/service"
	"github.com/billpoint/billpoint/internal/auth/store"
	"github.com/billpoint/billpoint/pkg/authsdk"
	"github.com/billpoint/billpoint/pkg/httpx"
	"github.com/billpoint/billpoint/pkg/slogx"
)

type MeHandler struct {
	AccountService *service.AccountService
}

type meResponse struct {
	User *authsdk.UserRecord `json:"user"`
}

// ServeHTTP godoc
//
//	@Summary		Current Account Endpoint
//	@Description	Return the account record for the presented access token
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	meResponse		"user"
//	@Failure		401	{object}	messageResponse	"message"
//	@Failure		500	{object}	messageResponse	"message"
//	@Router			/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	account, err := h.AccountService.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived its account.
			writeMessage(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}
		log.Error("account lookup failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, meResponse{User: userRecord(account)})
}
