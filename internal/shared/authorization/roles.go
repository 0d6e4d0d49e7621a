// Package authorization holds caller identity and role primitives shared by the HTTP layer
// and the admin use cases.
package authorization

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// Caller identifies the authenticated principal behind a request.
type Caller struct {
	UserID string
	Role   UserRole
}

// IsAnonymous reports whether no identity was attached to the request.
func (c Caller) IsAnonymous() bool {
	return c.UserID == ""
}
