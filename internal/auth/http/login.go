package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/billpoint/billpoint/internal/auth/service"
	"github.com/billpoint/billpoint/pkg/httpx"
	"github.com/billpoint/billpoint/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
	TokenService   *service.TokenService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with an email/password pair and receive an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	authResponse	"message, token, user"
//	@Failure		400		{object}	messageResponse	"message"
//	@Failure		401		{object}	messageResponse	"message"
//	@Failure		500		{object}	messageResponse	"message"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	account, err := h.AccountService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	token, err := h.TokenService.Mint(account)
	if err != nil {
		log.Error("token mint failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    userRecord(account),
	})
}
