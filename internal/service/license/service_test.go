package license

import (
	"context"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timedesk/timeclock-backend-go/internal/domain/license"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	user.UserRepository
	owner      user.User
	admins     []user.User
	supervisor *user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return f.owner, nil
}

func (f *fakeUserRepo) ListAdminsByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return f.admins, nil
}

func (f *fakeUserRepo) GetSupervisorForUser(ctx context.Context, userID string) (*user.User, error) {
	return f.supervisor, nil
}

type captureEmail struct {
	sent []string
}

func (c *captureEmail) SendLicenseSubmitted(to, adminName, employeeName, typeName, dateStart, dateEnd string) error {
	c.sent = append(c.sent, to)
	return nil
}

func (c *captureEmail) SendLicenseDecision(to, employeeName, typeName string, approved bool, reason string) error {
	return nil
}

func (c *captureEmail) SendPasswordReset(to, resetLink, expiresAt string) error {
	return nil
}

func submittedLicense() license.License {
	return license.License{
		ID:        "lic-1",
		UserID:    "u1",
		CompanyID: "c1",
		Type:      license.TypeVacation,
		DateStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	}
}

type captureStorage struct {
	paths []string
}

func (c *captureStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	c.paths = append(c.paths, path)
	return path, nil
}

func (c *captureStorage) Delete(ctx context.Context, path string) error { return nil }

func (c *captureStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return path, nil
}

func (c *captureStorage) Exists(ctx context.Context, path string) (bool, error) { return false, nil }

func TestStoreFilesUsesPerLicenseDirectory(t *testing.T) {
	store := &captureStorage{}
	svc := &LicenseServiceImpl{fileStorage: store}

	content := base64.StdEncoding.EncodeToString([]byte("hello"))
	docs, err := svc.storeFiles(context.Background(), "u1", "c1", "lic-1", []license.FileInput{
		{Name: "note.pdf", Content: content},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Regexp(t, `^licenses/c1/lic-1/[0-9a-f-]+_note\.pdf$`, store.paths[0])
	assert.Equal(t, store.paths[0], docs[0].URL)
}

func TestSendSubmittedNotifiesOwnerAdminsAndSupervisor(t *testing.T) {
	emails := &captureEmail{}
	svc := &LicenseServiceImpl{
		UserRepository: &fakeUserRepo{
			owner:      user.User{ID: "u1", Email: "owner@test.local", Name: "Owner"},
			admins:     []user.User{{Email: "admin@test.local", Name: "Admin"}},
			supervisor: &user.User{Email: "super@test.local", Name: "Super"},
		},
		emailSvc: emails,
	}

	svc.sendSubmitted(context.Background(), submittedLicense())

	assert.ElementsMatch(t,
		[]string{"owner@test.local", "admin@test.local", "super@test.local"},
		emails.sent)
}

func TestSendSubmittedWithoutSupervisor(t *testing.T) {
	emails := &captureEmail{}
	svc := &LicenseServiceImpl{
		UserRepository: &fakeUserRepo{
			owner:  user.User{ID: "u1", Email: "owner@test.local", Name: "Owner"},
			admins: []user.User{{Email: "admin@test.local", Name: "Admin"}},
		},
		emailSvc: emails,
	}

	svc.sendSubmitted(context.Background(), submittedLicense())

	assert.ElementsMatch(t,
		[]string{"owner@test.local", "admin@test.local"},
		emails.sent)
}

func TestSendSubmittedDeduplicatesOwnerAdmin(t *testing.T) {
	emails := &captureEmail{}
	svc := &LicenseServiceImpl{
		UserRepository: &fakeUserRepo{
			owner:  user.User{ID: "u1", Email: "boss@test.local", Name: "Boss"},
			admins: []user.User{{Email: "boss@test.local", Name: "Boss"}},
		},
		emailSvc: emails,
	}

	svc.sendSubmitted(context.Background(), submittedLicense())

	assert.Equal(t, []string{"boss@test.local"}, emails.sent)
}
