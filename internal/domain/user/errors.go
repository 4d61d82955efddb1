package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered in this company")
	ErrUserDisabled           = errors.New("user account is disabled")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
