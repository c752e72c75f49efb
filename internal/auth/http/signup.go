package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/billpoint/billpoint/internal/auth/service"
	"github.com/billpoint/billpoint/pkg/httpx"
	"github.com/billpoint/billpoint/pkg/slogx"
)

type SignupHandler struct {
	AccountService *service.AccountService
	TokenService   *service.TokenService
}

type signupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// ServeHTTP godoc
//
//	@Summary		Signup Endpoint
//	@Description	Register a new account and receive an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest	true	"Signup form"
//	@Success		201		{object}	authResponse	"message, token, user"
//	@Failure		400		{object}	messageResponse	"message"
//	@Failure		409		{object}	messageResponse	"message"
//	@Failure		500		{object}	messageResponse	"message"
//	@Router			/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	account, err := h.AccountService.Signup(ctx, service.SignupParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeMessage(w, http.StatusBadRequest, verr.Reason)
		case errors.Is(err, service.ErrEmailTaken):
			writeMessage(w, http.StatusConflict, "Email already exists")
		default:
			log.Error("signup failed", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	token, err := h.TokenService.Mint(account)
	if err != nil {
		log.Error("token mint failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "Signup successful",
		Token:   token,
		User:    userRecord(account),
	})
}
