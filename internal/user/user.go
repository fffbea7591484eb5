package user

import (
	"decormarket/internal/api"
)

// The principal and role types live in internal/api so that the auth
// middleware there does not have to import this package back (which would
// be an import cycle). The aliases keep user.Role / user.User working for
// every existing consumer.

type Role = api.Role

const (
	RoleUser      = api.RoleUser
	RoleDecorator = api.RoleDecorator
	RoleAdmin     = api.RoleAdmin
)

// ParseRole maps a stored role string to a Role. Unknown or missing values
// degrade to the lowest-privilege role rather than failing.
func ParseRole(s string) Role {
	return api.ParseRole(s)
}

type User = api.User
