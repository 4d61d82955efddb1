package license

import (
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

// MaxAttachments is the per-license attachment limit.
const MaxAttachments = 3

// MaxAttachmentSize is the per-file size limit in bytes (5MB).
const MaxAttachmentSize = 5 << 20

// AllowedExtensions is the attachment extension allowlist.
var AllowedExtensions = []string{"pdf", "jpg", "jpeg", "png"}

// ========================================
// LICENSE DTOs
// ========================================

// FileInput carries one attachment; Content is base64-encoded bytes.
type FileInput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type CreateLicenseRequest struct {
	Type      int         `json:"type"`
	Comments  string      `json:"comments"`
	DateStart string      `json:"dateStart"`
	DateEnd   string      `json:"dateEnd"`
	TimeStart *string     `json:"timeStart,omitempty"`
	TimeEnd   *string     `json:"timeEnd,omitempty"`
	Files     []FileInput `json:"files"`
}

func (r *CreateLicenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !LicenseType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be 1 (personal absence), 2 (sick leave) or 3 (vacation)",
		})
	}

	start, okStart := validator.IsValidDate(r.DateStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "dateStart",
			Message: "dateStart must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(r.DateEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "dateEnd",
			Message: "dateEnd must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "dateEnd",
			Message: "dateEnd must not be before dateStart",
		})
	}

	if r.TimeStart != nil {
		if _, ok := validator.IsValidClockTime(*r.TimeStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timeStart",
				Message: "timeStart must be HH:MM or HH:MM:SS",
			})
		}
	}
	if r.TimeEnd != nil {
		if _, ok := validator.IsValidClockTime(*r.TimeEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timeEnd",
				Message: "timeEnd must be HH:MM or HH:MM:SS",
			})
		}
	}

	if LicenseType(r.Type).RequiresAttachment() && len(r.Files) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "files",
			Message: "this license type requires at least one attachment",
		})
	}
	if len(r.Files) > MaxAttachments {
		errs = append(errs, validator.ValidationError{
			Field:   "files",
			Message: "a license can hold at most 3 attachments",
		})
	}
	for _, f := range r.Files {
		if !validator.HasAllowedExtension(f.Name, AllowedExtensions) {
			errs = append(errs, validator.ValidationError{
				Field:   "files",
				Message: "only pdf, jpg, jpeg and png attachments are allowed",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedDates returns the validated date range. Call Validate first.
func (r *CreateLicenseRequest) ParsedDates() (start, end time.Time) {
	start, _ = time.Parse("2006-01-02", r.DateStart)
	end, _ = time.Parse("2006-01-02", r.DateEnd)
	return start, end
}

type EditLicenseRequest struct {
	ID         string      `json:"id"`
	Comments   *string     `json:"comments,omitempty"`
	DateStart  *string     `json:"dateStart,omitempty"`
	DateEnd    *string     `json:"dateEnd,omitempty"`
	TimeStart  *string     `json:"timeStart,omitempty"`
	TimeEnd    *string     `json:"timeEnd,omitempty"`
	NewFiles   []FileInput `json:"newFiles,omitempty"`
	RemoveFile []string    `json:"removeFileIds,omitempty"`
}

func (r *EditLicenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.DateStart != nil {
		if _, ok := validator.IsValidDate(*r.DateStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateStart",
				Message: "dateStart must be YYYY-MM-DD",
			})
		}
	}
	if r.DateEnd != nil {
		if _, ok := validator.IsValidDate(*r.DateEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dateEnd",
				Message: "dateEnd must be YYYY-MM-DD",
			})
		}
	}
	for _, f := range r.NewFiles {
		if !validator.HasAllowedExtension(f.Name, AllowedExtensions) {
			errs = append(errs, validator.ValidationError{
				Field:   "newFiles",
				Message: "only pdf, jpg, jpeg and png attachments are allowed",
			})
			break
		}
	}
	for _, id := range r.RemoveFile {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "removeFileIds",
				Message: "removeFileIds must be valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteFileRequest struct {
	LicenseID  string `json:"licenseId"`
	DocumentID string `json:"documentId"`
}

func (r *DeleteFileRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.LicenseID) {
		errs = append(errs, validator.ValidationError{
			Field:   "licenseId",
			Message: "licenseId must be a valid UUID",
		})
	}
	if !validator.IsValidUUID(r.DocumentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "documentId",
			Message: "documentId must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLicensesRequest struct {
	UserID    *string `json:"userId,omitempty"` // admin only; defaults to caller
	Status    *int    `json:"status,omitempty"`
	DateStart *string `json:"dateStart,omitempty"`
	DateEnd   *string `json:"dateEnd,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

type RejectLicenseRequest struct {
	Reason string `json:"reason"`
}

// ========================================
// RESPONSES
// ========================================

type DocumentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type LicenseResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	UserName  *string            `json:"user_name,omitempty"`
	Type      int                `json:"type"`
	TypeName  string             `json:"type_name"`
	DateStart string             `json:"date_start"`
	DateEnd   string             `json:"date_end"`
	TimeStart *string            `json:"time_start,omitempty"`
	TimeEnd   *string            `json:"time_end,omitempty"`
	Comments  string             `json:"comments"`
	Status    int                `json:"status"`
	IsActive  bool               `json:"is_active"`
	Documents []DocumentResponse `json:"documents"`
}

func NewLicenseResponse(l License) LicenseResponse {
	resp := LicenseResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		UserName:  l.UserName,
		Type:      int(l.Type),
		TypeName:  l.Type.String(),
		DateStart: l.DateStart.Format("2006-01-02"),
		DateEnd:   l.DateEnd.Format("2006-01-02"),
		Comments:  l.Comments,
		Status:    int(l.Status),
		IsActive:  l.IsActive,
		Documents: []DocumentResponse{},
	}
	if l.TimeStart != nil {
		s := l.TimeStart.Format("15:04:05")
		resp.TimeStart = &s
	}
	if l.TimeEnd != nil {
		s := l.TimeEnd.Format("15:04:05")
		resp.TimeEnd = &s
	}
	for _, d := range l.Documents {
		resp.Documents = append(resp.Documents, DocumentResponse{
			ID:   d.ID,
			Name: d.Name,
			URL:  d.URL,
			Type: d.Type,
		})
	}
	return resp
}

type ListLicensesResponse struct {
	Data  []LicenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
