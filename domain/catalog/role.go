package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRole indicates a role outside the known set.
var ErrInvalidRole = errors.New("invalid role")

// Role is a user's access level.
type Role string

// Role values.
const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// DefaultRole is assigned when no role is given.
const DefaultRole = RoleUser

// ParseRole parses a role name. An empty string yields DefaultRole.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return DefaultRole, nil
	case RoleAdmin, RoleModerator, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// String returns the role name.
func (r Role) String() string { return string(r) }
