package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/k4jlpg/inventory/internal/common"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleStaff:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", common.ErrValidation, s)
	}
}

// User is an account snapshot. The credential secret never leaves the local store.
type User struct {
	ID       string
	Username string
	Role     Role
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
func (u User) IsStaff() bool { return u.Role == RoleStaff }

// Complete reports whether every field is populated.
func (u User) Complete() bool {
	return u.ID != "" && u.Username != "" && u.Role != ""
}

// UserPatch is a partial user update: nil fields keep their current value.
type UserPatch struct {
	Secret *string
	Role   *Role
}

func (p UserPatch) IsEmpty() bool {
	return p.Secret == nil && p.Role == nil
}

// Validate checks the present fields.
func (p UserPatch) Validate() error {
	if p.Secret != nil && *p.Secret == "" {
		return fmt.Errorf("%w: password must not be empty", common.ErrValidation)
	}
	if p.Role != nil {
		if _, err := ParseRole(string(*p.Role)); err != nil {
			return err
		}
	}
	return nil
}

// Session is the live authentication state: a token plus the signed-in user.
type Session struct {
	AccessToken string
	User        User
}

// Valid reports whether both a token and a fully populated user are present.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.User.Complete()
}

// SyncMetadata records when an entity cache was last replaced wholesale.
type SyncMetadata struct {
	Key      string
	LastSync time.Time
}
