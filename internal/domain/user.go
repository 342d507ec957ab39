package domain

// Role is the access level carried by a principal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID       string
	Username string
	Role     Role
}
