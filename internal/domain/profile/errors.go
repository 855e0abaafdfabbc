package profile

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrEmployeeNumberExists = errors.New("employee number already in use")
	ErrNotProfileOwner      = errors.New("profile can only be modified by its owner")
)
