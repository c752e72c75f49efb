package authsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// User-facing messages. The backend's own message wins when it sends one;
// these are the fixed fallbacks and rejection texts.
const (
	MsgLoginSuccess       = "Login successful"
	MsgSignupSuccess      = "Signup successful"
	MsgLogoutSuccess      = "Logout successful"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidRequest     = "Invalid request"
	MsgEmailExists        = "Email already exists"
	MsgLoginFailed        = "Login failed. Please try again."
	MsgSignupFailed       = "Signup failed. Please try again."
	MsgLogoutFailed       = "Logout failed. Please try again."
	MsgConnectivity       = "Unable to reach the server. Please check your connection."
)

// AuthResult is the payload of a successful login or signup: the identity
// the backend returned plus the access token minted for it.
type AuthResult struct {
	Token string
	User  UserRecord
}

// SignupParams carries the signup form. PhoneNumber and Address are optional
// and omitted from the request body entirely when empty.
type SignupParams struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// authResponse is the wire shape of a backend auth response. On failure only
// Message is expected; on success User must be present.
type authResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

// Login authenticates with an email/password pair. Email and password must be
// non-empty; any further format validation is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) Envelope[AuthResult] {
	body := map[string]string{"email": email, "password": password}

	resp, err := c.postJSON(ctx, loginPath, body, nil)
	if err != nil {
		c.log().Warn("login request failed", "err", err)
		return Fail[AuthResult](MsgConnectivity)
	}

	return c.decodeAuthResponse(resp, "login", MsgLoginSuccess, MsgLoginFailed, false)
}

// Signup registers a new account. Optional fields absent from params are
// omitted from the request, not sent as null.
func (c *Client) Signup(ctx context.Context, params SignupParams) Envelope[AuthResult] {
	resp, err := c.postJSON(ctx, signupPath, params, nil)
	if err != nil {
		c.log().Warn("signup request failed", "err", err)
		return Fail[AuthResult](MsgConnectivity)
	}

	return c.decodeAuthResponse(resp, "signup", MsgSignupSuccess, MsgSignupFailed, true)
}

// Logout invalidates the given access token on the backend. A 200 is success;
// every other outcome collapses to a generic failure.
func (c *Client) Logout(ctx context.Context, token string) Envelope[struct{}] {
	headers := map[string]string{"Authorization": "Bearer " + token}

	resp, err := c.postJSON(ctx, logoutPath, nil, headers)
	if err != nil {
		c.log().Warn("logout request failed", "err", err)
		return Fail[struct{}](MsgConnectivity)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Fail[struct{}](MsgLogoutFailed)
	}
	return Ok(MsgLogoutSuccess, struct{}{})
}

// decodeAuthResponse applies the status-code policy shared by login and
// signup and decodes the success payload. The mapping is total: every status
// and every malformed body produces a well-formed Envelope.
func (c *Client) decodeAuthResponse(
	resp *http.Response,
	op, successDefault, genericFailure string,
	conflictIsEmail bool,
) Envelope[AuthResult] {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log().Warn(op+" response read failed", "err", err)
		return Fail[AuthResult](MsgConnectivity)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var decoded authResponse
		if err := json.Unmarshal(raw, &decoded); err != nil {
			c.log().Warn(op+" response decode failed", "status", resp.StatusCode, "err", err)
			return Fail[AuthResult](MsgConnectivity)
		}

		var user UserRecord
		if len(decoded.User) > 0 {
			if err := json.Unmarshal(decoded.User, &user); err != nil {
				c.log().Warn(op+" user decode failed", "err", err)
				return Fail[AuthResult](MsgConnectivity)
			}
		}

		message := decoded.Message
		if message == "" {
			message = successDefault
		}
		return Ok(message, AuthResult{Token: decoded.Token, User: user})

	case http.StatusUnauthorized:
		// Fixed message regardless of what the body says.
		return Fail[AuthResult](MsgInvalidCredentials)

	case http.StatusBadRequest:
		var decoded authResponse
		if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Message != "" {
			return Fail[AuthResult](decoded.Message)
		}
		return Fail[AuthResult](MsgInvalidRequest)

	case http.StatusConflict:
		if conflictIsEmail {
			return Fail[AuthResult](MsgEmailExists)
		}
		// 409 carries no meaning for login; treat like any other failure.
		return Fail[AuthResult](genericFailure)

	default:
		return Fail[AuthResult](genericFailure)
	}
}
