package api

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleDecorator Role = "decorator"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role string to a Role. Unknown or missing values
// degrade to the lowest-privilege role rather than failing.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDecorator:
		return RoleDecorator
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	Role      Role      `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
