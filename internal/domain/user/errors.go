package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrHRPrivilegeRequired    = errors.New("hr privilege required")
	ErrAccessDenied           = errors.New("access denied")
)
