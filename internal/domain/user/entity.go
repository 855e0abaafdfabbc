package user

import "time"

type Role string

const (
	RoleAutorabitAdmin Role = "autorabit_admin" // Full admin - settings, reports, role management
	RoleViewOnlyAdmin  Role = "view_only_admin" // Can view reports but not mutate settings
	RoleHRAdmin        Role = "hr_admin"        // HR views and employee management
	RoleEmployee       Role = "employee"        // Regular employee / external vendor
)

// ValidRoles is the closed set of role tags a persisted assignment may carry.
var ValidRoles = []Role{RoleAutorabitAdmin, RoleViewOnlyAdmin, RoleHRAdmin, RoleEmployee}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RoleAssignment is the persisted role row for a user. At most one per user;
// once written it is authoritative and the email heuristic never runs again.
type RoleAssignment struct {
	UserID    string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAutorabitAdmin checks for full admin.
func (r Role) IsAutorabitAdmin() bool {
	return r == RoleAutorabitAdmin
}

func (r Role) IsViewOnlyAdmin() bool {
	return r == RoleViewOnlyAdmin
}

func (r Role) IsHRAdmin() bool {
	return r == RoleHRAdmin
}

// HasAdminAccess checks whether the role can open admin report views.
func (r Role) HasAdminAccess() bool {
	return r.IsAutorabitAdmin() || r.IsViewOnlyAdmin()
}

// HasHRAccess checks whether the role can manage employee profiles.
func (r Role) HasHRAccess() bool {
	return r.IsHRAdmin() || r.IsAutorabitAdmin()
}

func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}
