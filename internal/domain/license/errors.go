package license

import "errors"

// License domain errors
var (
	ErrLicenseNotFound  = errors.New("license not found")
	ErrDocumentNotFound = errors.New("document not found")

	ErrNotOwner         = errors.New("license belongs to another user")
	ErrInvalidDateRange = errors.New("license end date must not be before start date")
	ErrLicenseRejected  = errors.New("rejected licenses cannot be modified")
	ErrAlreadyProcessed = errors.New("license has already been approved or rejected")

	ErrAttachmentRequired = errors.New("this license type requires at least one attachment")
	ErrTooManyAttachments = errors.New("a license can hold at most 3 attachments")
	ErrInvalidFileType    = errors.New("only pdf, jpg, jpeg and png attachments are allowed")
	ErrFileTooLarge       = errors.New("attachments must not exceed 5MB")
)
