package license

import "time"

// LicenseType matches the numeric codes the clients send.
type LicenseType int

const (
	TypePersonalAbsence LicenseType = 1
	TypeSickLeave       LicenseType = 2
	TypeVacation        LicenseType = 3
)

// RequiresAttachment reports whether the type needs at least one document
// at submission time.
func (t LicenseType) RequiresAttachment() bool {
	return t == TypePersonalAbsence || t == TypeSickLeave
}

func (t LicenseType) Valid() bool {
	return t >= TypePersonalAbsence && t <= TypeVacation
}

func (t LicenseType) String() string {
	switch t {
	case TypePersonalAbsence:
		return "Personal Absence"
	case TypeSickLeave:
		return "Sick Leave"
	case TypeVacation:
		return "Vacation"
	}
	return "Unknown"
}

type LicenseStatus int

const (
	StatusPending  LicenseStatus = 0
	StatusApproved LicenseStatus = 1
	StatusRejected LicenseStatus = 2
)

// License is an absence/leave request. Once rejected it becomes immutable
// to the owning user.
type License struct {
	ID        string
	UserID    string
	CompanyID string
	Type      LicenseType
	DateStart time.Time
	DateEnd   time.Time

	// Optional wall-clock bounds for partial-day absences.
	TimeStart *time.Time
	TimeEnd   *time.Time

	Comments string
	Status   LicenseStatus
	IsActive bool

	ApprovedBy *string
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName  *string
	Documents []Document
}

// Editable reports whether the owner may still change or delete the
// request.
func (l *License) Editable() bool {
	return l.Status != StatusRejected
}

// Document is the metadata of one uploaded attachment.
type Document struct {
	ID        string
	LicenseID *string
	UserID    string
	CompanyID string
	Name      string
	URL       string // storage path
	Type      string // category
	CreatedAt time.Time
}
