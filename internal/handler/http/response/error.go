package response

import (
	"errors"
	"net/http"

	"github.com/timedesk/timeclock-backend-go/internal/domain/auth"
	"github.com/timedesk/timeclock-backend-go/internal/domain/company"
	"github.com/timedesk/timeclock-backend-go/internal/domain/license"
	"github.com/timedesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/timedesk/timeclock-backend-go/internal/domain/timeslot"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrUserNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrUserNotActive):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")

	// Time register domain errors
	case errors.Is(err, timeslot.ErrSlotNotFound):
		NotFound(w, "Time register not found")
	case errors.Is(err, timeslot.ErrSlotAlreadyOpen):
		Conflict(w, "An open slot already exists for today")
	case errors.Is(err, timeslot.ErrSlotNotOpen):
		Conflict(w, "Slot is not open")
	case errors.Is(err, timeslot.ErrInvalidTimeRange):
		BadRequest(w, "End time must not precede start time", nil)
	case errors.Is(err, timeslot.ErrUnauthorized):
		Forbidden(w, "Not allowed for this slot")

	// License domain errors
	case errors.Is(err, license.ErrLicenseNotFound):
		NotFound(w, "License not found")
	case errors.Is(err, license.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, license.ErrNotOwner):
		Forbidden(w, "License belongs to another user")
	case errors.Is(err, license.ErrLicenseRejected):
		Conflict(w, "Rejected licenses cannot be modified")
	case errors.Is(err, license.ErrAlreadyProcessed):
		Conflict(w, "License has already been approved or rejected")
	case errors.Is(err, license.ErrInvalidDateRange):
		BadRequest(w, "End date must not precede start date", nil)
	case errors.Is(err, license.ErrAttachmentRequired):
		BadRequest(w, "This license type requires at least one attachment", nil)
	case errors.Is(err, license.ErrTooManyAttachments):
		BadRequest(w, "A license can hold at most 3 attachments", nil)
	case errors.Is(err, license.ErrInvalidFileType):
		BadRequest(w, "Only pdf, jpg, jpeg and png attachments are allowed", nil)
	case errors.Is(err, license.ErrFileTooLarge):
		BadRequest(w, "Attachments must not exceed 5MB", nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrScheduleOverlap):
		Conflict(w, "An active schedule already covers this date range")
	case errors.Is(err, schedule.ErrInvalidSegment):
		BadRequest(w, "Segment end must be after segment start", nil)
	case errors.Is(err, schedule.ErrInvalidEffectiveTo):
		BadRequest(w, "Effective end date must not be before start date", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, user.ErrUserDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrOfficeNotFound):
		NotFound(w, "Office not found")
	case errors.Is(err, company.ErrNameExists):
		Conflict(w, "Company name already registered")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
