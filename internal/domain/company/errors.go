package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrOfficeNotFound  = errors.New("office not found")
	ErrNameExists      = errors.New("company name already registered")
)
