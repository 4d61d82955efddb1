package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleEmployee   Role = "employee"
)

type User struct {
	ID           string
	CompanyID    string
	OfficeID     *string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	IsActive     bool
	IsVerified   bool
	FirstLogin   bool
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	CompanyName *string
	OfficeName  *string
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
