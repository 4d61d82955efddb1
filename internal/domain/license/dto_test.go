package license

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/validator"
)

func validCreateRequest() CreateLicenseRequest {
	return CreateLicenseRequest{
		Type:      int(TypeVacation),
		Comments:  "summer holidays",
		DateStart: "2026-07-01",
		DateEnd:   "2026-07-15",
	}
}

func TestCreateLicenseRequestValidate(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, req.Validate())

	start, end := req.ParsedDates()
	assert.True(t, end.After(start))
}

func TestCreateLicenseRequestRejectsUnknownType(t *testing.T) {
	req := validCreateRequest()
	req.Type = 9
	assert.Error(t, req.Validate())
}

func TestCreateLicenseRequestRejectsInvertedDates(t *testing.T) {
	req := validCreateRequest()
	req.DateStart = "2026-07-15"
	req.DateEnd = "2026-07-01"

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "dateEnd")
}

func TestCreateLicenseRequestSingleDay(t *testing.T) {
	req := validCreateRequest()
	req.DateStart = "2026-07-01"
	req.DateEnd = "2026-07-01"
	assert.NoError(t, req.Validate())
}

func TestCreateLicenseRequestAttachmentRequired(t *testing.T) {
	for _, typ := range []LicenseType{TypePersonalAbsence, TypeSickLeave} {
		req := validCreateRequest()
		req.Type = int(typ)
		assert.Error(t, req.Validate(), "type %d without attachment", typ)

		req.Files = []FileInput{{Name: "certificate.pdf", Content: "aGVsbG8="}}
		assert.NoError(t, req.Validate(), "type %d with attachment", typ)
	}

	// Vacations need no paperwork.
	req := validCreateRequest()
	req.Type = int(TypeVacation)
	assert.NoError(t, req.Validate())
}

func TestCreateLicenseRequestAttachmentLimit(t *testing.T) {
	req := validCreateRequest()
	req.Files = []FileInput{
		{Name: "a.pdf"}, {Name: "b.jpg"}, {Name: "c.png"},
	}
	assert.NoError(t, req.Validate())

	req.Files = append(req.Files, FileInput{Name: "d.jpeg"})
	assert.Error(t, req.Validate())
}

func TestCreateLicenseRequestExtensionAllowlist(t *testing.T) {
	allowed := []string{"scan.pdf", "photo.jpg", "photo.jpeg", "shot.PNG"}
	for _, name := range allowed {
		req := validCreateRequest()
		req.Files = []FileInput{{Name: name}}
		assert.NoError(t, req.Validate(), "file %s", name)
	}

	rejected := []string{"macro.docx", "archive.zip", "script.sh", "noextension"}
	for _, name := range rejected {
		req := validCreateRequest()
		req.Files = []FileInput{{Name: name}}
		assert.Error(t, req.Validate(), "file %s", name)
	}
}

func TestCreateLicenseRequestClockTimes(t *testing.T) {
	req := validCreateRequest()
	short := "09:30"
	full := "17:45:00"
	req.TimeStart = &short
	req.TimeEnd = &full
	assert.NoError(t, req.Validate())

	bad := "9h30"
	req.TimeStart = &bad
	assert.Error(t, req.Validate())
}

func TestEditLicenseRequestValidate(t *testing.T) {
	req := EditLicenseRequest{ID: "0195f1a2-1111-7abc-8def-0123456789ab"}
	assert.NoError(t, req.Validate())

	req.ID = "not-a-uuid"
	assert.Error(t, req.Validate())

	req.ID = "0195f1a2-1111-7abc-8def-0123456789ab"
	req.NewFiles = []FileInput{{Name: "notes.txt"}}
	assert.Error(t, req.Validate())

	req.NewFiles = nil
	req.RemoveFile = []string{"bogus"}
	assert.Error(t, req.Validate())
}

func TestLicenseEditable(t *testing.T) {
	pending := License{Status: StatusPending}
	approved := License{Status: StatusApproved}
	rejected := License{Status: StatusRejected}

	assert.True(t, pending.Editable())
	assert.True(t, approved.Editable())
	assert.False(t, rejected.Editable())
}

func TestLicenseTypeRequiresAttachment(t *testing.T) {
	assert.True(t, TypePersonalAbsence.RequiresAttachment())
	assert.True(t, TypeSickLeave.RequiresAttachment())
	assert.False(t, TypeVacation.RequiresAttachment())
}
