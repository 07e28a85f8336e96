package polyclinic

import (
	"bytes"
	"encoding/json"
	"time"
)

// UserAccount is a patient account as returned by the auth API.
//
// Password is the bcrypt hash stored by the backend.
type UserAccount struct {
	ID         int    `json:"patientID"`
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Patronymic string `json:"patronymic"`
	Polic      string `json:"polic"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsDeleted  bool   `json:"is_deleted"`
}

// AdminAccount is an administrator account as returned by the auth API.
//
// Password is the bcrypt hash stored by the backend.
type AdminAccount struct {
	ID       int    `json:"adminID"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive bool   `json:"isActive"`
}

type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Registration is a sign-up request of a patient.
//
// Agreed is the user agreement checkbox of the sign-up form. It is not sent to the backend.
type Registration struct {
	Surname    string `json:"surname" form:"surname"`
	Name       string `json:"name" form:"name"`
	Patronymic string `json:"patronymic" form:"patronymic"`
	Polic      string `json:"polic" form:"polic"`
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	Agreed     bool   `json:"-" form:"agreed"`
}

// Tokens is a pair of access and refresh token issued by the auth API.
type Tokens struct {
	PatientID       int      `json:"patientID,omitempty"`
	AdminID         int      `json:"adminID,omitempty"`
	AccessToken     string   `json:"access_token"`
	AccessLifetime  Lifetime `json:"access_lifetime"`
	RefreshToken    string   `json:"refresh_token"`
	RefreshLifetime Lifetime `json:"refresh_lifetime"`
}

// Lifetime is the expiry of a token.
//
// Values which can not be read as time are decoded as zero, which means "unknown".
type Lifetime struct {
	time.Time
}

var lifetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (l *Lifetime) UnmarshalJSON(b []byte) error {
	l.Time = time.Time{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	for _, layout := range lifetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			l.Time = t
			return nil
		}
	}
	return nil
}

func (l Lifetime) MarshalJSON() ([]byte, error) {
	if l.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(l.Format(time.RFC3339Nano))
}
