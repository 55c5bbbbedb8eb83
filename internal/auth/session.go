package auth

import "strings"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// ParseRole maps a claim value onto a Role. Unknown or empty values are Staff.
func ParseRole(s string) Role {
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleStaff
}

// Session is the authenticated caller as provided by the host application.
type Session struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Badge is the role label shown on narrow screens.
func (s Session) Badge() string {
	if s.IsAdmin() {
		return "Admin"
	}
	return "Staff"
}
