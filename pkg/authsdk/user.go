package authsdk

import "encoding/json"

// UserRecord is the authenticated identity returned by the backend and
// persisted locally between runs. Optional fields are empty strings when the
// backend omits them.
type UserRecord struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Address      string `json:"address,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// userPayload accepts every key spelling the backend has been observed to
// use. Decoding is lenient: unknown keys are ignored and absent keys fall
// back to the zero value instead of failing.
type userPayload struct {
	ID            string `json:"id"`
	AltID         string `json:"_id"`
	Username      string `json:"username"`
	AltUsername   string `json:"userName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	AltPhone      string `json:"phone"`
	Address       string `json:"address"`
	ProfileImage  string `json:"profileImage"`
	AltProfileImg string `json:"avatar"`
}

// UnmarshalJSON decodes a backend user object, coalescing alternate key
// spellings into the canonical fields.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var p userPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*u = UserRecord{
		ID:           coalesce(p.ID, p.AltID),
		Username:     coalesce(p.Username, p.AltUsername),
		Email:        p.Email,
		PhoneNumber:  coalesce(p.PhoneNumber, p.AltPhone),
		Address:      p.Address,
		ProfileImage: coalesce(p.ProfileImage, p.AltProfileImg),
	}
	return nil
}

// Valid reports whether the record carries the two fields a well-formed
// backend payload always has.
func (u UserRecord) Valid() bool {
	return u.ID != "" && u.Email != ""
}

// IsZero reports whether the record is the empty placeholder.
func (u UserRecord) IsZero() bool {
	return u == UserRecord{}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
