package http

import (
	"net/http"

	"github.com/billpoint/billpoint/internal/auth/domain"
	"github.com/billpoint/billpoint/pkg/authsdk"
	"github.com/billpoint/billpoint/pkg/httpx"
)

// authResponse is the wire shape of a successful login or signup.
type authResponse struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    *authsdk.UserRecord `json:"user"`
}

// messageResponse is the wire shape of every failure body.
type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	httpx.WriteJSON(w, code, messageResponse{Message: message})
}

// userRecord maps an account to its public wire representation. The password
// hash never leaves this package.
func userRecord(a domain.Account) *authsdk.UserRecord {
	return &authsdk.UserRecord{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PhoneNumber:  a.PhoneNumber,
		Address:      a.Address,
		ProfileImage: a.ProfileImage,
	}
}
