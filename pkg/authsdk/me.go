package authsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const mePath = "/auth/me"

// MsgSessionExpired is returned when a token is no longer accepted.
const MsgSessionExpired = "Session expired. Please log in again."

// Me fetches the authenticated account's record using the given access
// token. A 401 means the token was revoked or expired.
func (c *Client) Me(ctx context.Context, token string) Envelope[UserRecord] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(mePath), nil)
	if err != nil {
		return Fail[UserRecord](MsgConnectivity)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log().Warn("me request failed", "err", err)
		return Fail[UserRecord](MsgConnectivity)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fail[UserRecord](MsgConnectivity)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var wrapped struct {
			User json.RawMessage `json:"user"`
		}
		var user UserRecord
		if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.User) == 0 {
			return Fail[UserRecord](MsgConnectivity)
		}
		if err := json.Unmarshal(wrapped.User, &user); err != nil {
			return Fail[UserRecord](MsgConnectivity)
		}
		return Ok("", user)

	case http.StatusUnauthorized:
		return Fail[UserRecord](MsgSessionExpired)

	default:
		return Fail[UserRecord](MsgConnectivity)
	}
}
