package entity

import (
	"encoding/json"
	"fmt"
)

// User roles as stored in the session record.
const (
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// SessionKey is the key under which the session record is persisted in the
// session store.
const SessionKey = "user"

// Session holds the logged-in user's role and email. It is written at login
// and read-only everywhere else.
type Session struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// ParseSession decodes a session record from its stored JSON form.
func ParseSession(raw string) (Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	return s, nil
}

// Encode serializes the session to its stored JSON form.
func (s Session) Encode() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Type == RoleAdmin
}

// IsEmployee reports whether the session belongs to an employee.
func (s Session) IsEmployee() bool {
	return s.Type == RoleEmployee
}
