package license

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/timedesk/timeclock-backend-go/internal/domain/license"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/email"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/storage"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
)

type LicenseServiceImpl struct {
	db *database.DB
	license.LicenseRepository
	license.DocumentRepository
	user.UserRepository
	fileStorage storage.FileStorage
	emailSvc    email.EmailService
}

func NewLicenseService(
	db *database.DB,
	licenseRepo license.LicenseRepository,
	documentRepo license.DocumentRepository,
	userRepo user.UserRepository,
	fileStorage storage.FileStorage,
	emailSvc email.EmailService,
) license.LicenseService {
	return &LicenseServiceImpl{
		db:                 db,
		LicenseRepository:  licenseRepo,
		DocumentRepository: documentRepo,
		UserRepository:     userRepo,
		fileStorage:        fileStorage,
		emailSvc:           emailSvc,
	}
}

func callerClaims(ctx context.Context) (userID, companyID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}
	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	roleStr, _ := claims["role"].(string)
	return userID, companyID, user.Role(roleStr), nil
}

func canDecide(role user.Role) bool {
	return role == user.RoleAdmin || role == user.RoleSupervisor
}

// decodeFile turns a base64 attachment into bytes, enforcing the size
// limit on the decoded content.
func decodeFile(f license.FileInput) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil {
		return nil, fmt.Errorf("attachment %q is not valid base64: %w", f.Name, err)
	}
	if len(data) > license.MaxAttachmentSize {
		return nil, license.ErrFileTooLarge
	}
	return data, nil
}

// storeFiles uploads attachments and returns document rows ready for
// insertion. On any failure the already-uploaded files are removed.
func (s *LicenseServiceImpl) storeFiles(ctx context.Context, userID, companyID, licenseID string, files []license.FileInput) ([]license.Document, error) {
	var docs []license.Document
	for _, f := range files {
		data, err := decodeFile(f)
		if err != nil {
			s.removeStored(ctx, docs)
			return nil, err
		}

		path := fmt.Sprintf("licenses/%s/%s/%s_%s", companyID, licenseID, uuid.New().String(), f.Name)
		key, err := s.fileStorage.Upload(ctx, bytes.NewReader(data), path, "")
		if err != nil {
			s.removeStored(ctx, docs)
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}

		docs = append(docs, license.Document{
			UserID:    userID,
			CompanyID: companyID,
			Name:      f.Name,
			URL:       key,
			Type:      "license",
		})
	}
	return docs, nil
}

func (s *LicenseServiceImpl) removeStored(ctx context.Context, docs []license.Document) {
	for _, d := range docs {
		if err := s.fileStorage.Delete(ctx, d.URL); err != nil {
			slog.Error("Failed to remove stored file", "path", d.URL, "error", err)
		}
	}
}

// Submit implements license.LicenseService.
func (s *LicenseServiceImpl) Submit(ctx context.Context, req license.CreateLicenseRequest) (license.LicenseResponse, error) {
	if err := req.Validate(); err != nil {
		return license.LicenseResponse{}, err
	}

	userID, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return license.LicenseResponse{}, err
	}

	dateStart, dateEnd := req.ParsedDates()

	l := license.License{
		UserID:    userID,
		CompanyID: companyID,
		Type:      license.LicenseType(req.Type),
		DateStart: dateStart,
		DateEnd:   dateEnd,
		Comments:  req.Comments,
		Status:    license.StatusPending,
		IsActive:  true,
	}
	if req.TimeStart != nil {
		t, _ := time.Parse("15:04:05", normalizeClock(*req.TimeStart))
		l.TimeStart = &t
	}
	if req.TimeEnd != nil {
		t, _ := time.Parse("15:04:05", normalizeClock(*req.TimeEnd))
		l.TimeEnd = &t
	}

	var created license.License
	var docs []license.Document
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.LicenseRepository.Create(txCtx, l)
		if err != nil {
			return err
		}
		// Attachments live under the license's own directory, so the row
		// has to exist first.
		docs, err = s.storeFiles(ctx, userID, companyID, created.ID, req.Files)
		if err != nil {
			return err
		}
		for i := range docs {
			docs[i].LicenseID = &created.ID
			doc, err := s.DocumentRepository.Create(txCtx, docs[i])
			if err != nil {
				return err
			}
			docs[i] = doc
		}
		return nil
	})
	if err != nil {
		s.removeStored(ctx, docs)
		return license.LicenseResponse{}, err
	}
	created.Documents = docs

	s.notifySubmitted(created)

	return license.NewLicenseResponse(created), nil
}

func normalizeClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}

// notifySubmitted emails the company admins, the owner, and the owner's
// supervisor. Email failure never affects the request itself.
func (s *LicenseServiceImpl) notifySubmitted(l license.License) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.sendSubmitted(ctx, l)
	}()
}

func (s *LicenseServiceImpl) sendSubmitted(ctx context.Context, l license.License) {
	owner, err := s.UserRepository.GetByID(ctx, l.UserID)
	if err != nil {
		slog.Error("Failed to load license owner for notification", "license_id", l.ID, "error", err)
		return
	}

	recipients := map[string]string{owner.Email: owner.Name}
	admins, err := s.UserRepository.ListAdminsByCompany(ctx, l.CompanyID)
	if err != nil {
		slog.Error("Failed to list admins for notification", "license_id", l.ID, "error", err)
	}
	for _, a := range admins {
		recipients[a.Email] = a.Name
	}
	supervisor, err := s.UserRepository.GetSupervisorForUser(ctx, l.UserID)
	if err != nil {
		slog.Error("Failed to resolve supervisor for notification", "license_id", l.ID, "error", err)
	}
	if supervisor != nil {
		recipients[supervisor.Email] = supervisor.Name
	}

	for addr, name := range recipients {
		if err := s.emailSvc.SendLicenseSubmitted(
			addr, name, owner.Name, l.Type.String(),
			l.DateStart.Format("2006-01-02"), l.DateEnd.Format("2006-01-02"),
		); err != nil {
			slog.Error("Failed to send submission notification", "to", addr, "license_id", l.ID, "error", err)
		}
	}
}

// Edit implements license.LicenseService.
func (s *LicenseServiceImpl) Edit(ctx context.Context, req license.EditLicenseRequest) (license.LicenseResponse, error) {
	if err := req.Validate(); err != nil {
		return license.LicenseResponse{}, err
	}

	userID, companyID, _, err := callerClaims(ctx)
	if err != nil {
		return license.LicenseResponse{}, err
	}

	l, err := s.LicenseRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return license.LicenseResponse{}, err
	}
	if l.UserID != userID {
		return license.LicenseResponse{}, license.ErrNotOwner
	}
	if !l.Editable() {
		return license.LicenseResponse{}, license.ErrLicenseRejected
	}

	if req.Comments != nil {
		l.Comments = *req.Comments
	}
	if req.DateStart != nil {
		l.DateStart, _ = time.Parse("2006-01-02", *req.DateStart)
	}
	if req.DateEnd != nil {
		l.DateEnd, _ = time.Parse("2006-01-02", *req.DateEnd)
	}
	if l.DateEnd.Before(l.DateStart) {
		return license.LicenseResponse{}, license.ErrInvalidDateRange
	}
	if req.TimeStart != nil {
		t, _ := time.Parse("15:04:05", normalizeClock(*req.TimeStart))
		l.TimeStart = &t
	}
	if req.TimeEnd != nil {
		t, _ := time.Parse("15:04:05", normalizeClock(*req.TimeEnd))
		l.TimeEnd = &t
	}

	count, err := s.DocumentRepository.CountByLicense(ctx, l.ID)
	if err != nil {
		return license.LicenseResponse{}, err
	}
	if count-len(req.RemoveFile)+len(req.NewFiles) > license.MaxAttachments {
		return license.LicenseResponse{}, license.ErrTooManyAttachments
	}
	remaining := count - len(req.RemoveFile) + len(req.NewFiles)
	if l.Type.RequiresAttachment() && remaining < 1 {
		return license.LicenseResponse{}, license.ErrAttachmentRequired
	}

	newDocs, err := s.storeFiles(ctx, userID, companyID, l.ID, req.NewFiles)
	if err != nil {
		return license.LicenseResponse{}, err
	}

	var removedPaths []string
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.LicenseRepository.Update(txCtx, l); err != nil {
			return err
		}
		for _, docID := range req.RemoveFile {
			doc, err := s.DocumentRepository.GetByID(txCtx, docID, companyID)
			if err != nil {
				return err
			}
			if doc.LicenseID == nil || *doc.LicenseID != l.ID {
				return license.ErrDocumentNotFound
			}
			if err := s.DocumentRepository.Delete(txCtx, docID, companyID); err != nil {
				return err
			}
			removedPaths = append(removedPaths, doc.URL)
		}
		for i := range newDocs {
			newDocs[i].LicenseID = &l.ID
			doc, err := s.DocumentRepository.Create(txCtx, newDocs[i])
			if err != nil {
				return err
			}
			newDocs[i] = doc
		}
		return nil
	})
	if err != nil {
		s.removeStored(ctx, newDocs)
		return license.LicenseResponse{}, err
	}

	for _, path := range removedPaths {
		if err := s.fileStorage.Delete(ctx, path); err != nil {
			slog.Error("Failed to remove stored file", "path", path, "error", err)
		}
	}

	updated, err := s.LicenseRepository.GetByID(ctx, l.ID, companyID)
	if err != nil {
		return license.LicenseResponse{}, err
	}
	return license.NewLicenseResponse(updated), nil
}

// DeleteFile implements license.LicenseService.
func (s *LicenseServiceImpl) DeleteFile(ctx context.Context, req license.DeleteFileRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return err
	}

	l, err := s.LicenseRepository.GetByID(ctx, req.LicenseID, companyID)
	if err != nil {
		return err
	}
	if l.UserID != userID && !canDecide(role) {
		return license.ErrNotOwner
	}
	if !l.Editable() {
		return license.ErrLicenseRejected
	}

	doc, err := s.DocumentRepository.GetByID(ctx, req.DocumentID, companyID)
	if err != nil {
		return err
	}
	if doc.LicenseID == nil || *doc.LicenseID != l.ID {
		return license.ErrDocumentNotFound
	}

	count, err := s.DocumentRepository.CountByLicense(ctx, l.ID)
	if err != nil {
		return err
	}
	if l.Type.RequiresAttachment() && count <= 1 {
		return license.ErrAttachmentRequired
	}

	if err := s.DocumentRepository.Delete(ctx, req.DocumentID, companyID); err != nil {
		return err
	}
	if err := s.fileStorage.Delete(ctx, doc.URL); err != nil {
		slog.Error("Failed to remove stored file", "path", doc.URL, "error", err)
	}

	return nil
}

// Delete implements license.LicenseService.
func (s *LicenseServiceImpl) Delete(ctx context.Context, id string) error {
	userID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return err
	}

	l, err := s.LicenseRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if l.UserID != userID && role != user.RoleAdmin {
		return license.ErrNotOwner
	}
	if l.UserID == userID && role != user.RoleAdmin && !l.Editable() {
		return license.ErrLicenseRejected
	}

	// Document rows cascade with the license; backing files are purged
	// afterwards.
	if err := s.LicenseRepository.Delete(ctx, id, companyID); err != nil {
		return err
	}
	for _, doc := range l.Documents {
		if err := s.fileStorage.Delete(ctx, doc.URL); err != nil {
			slog.Error("Failed to remove stored file", "path", doc.URL, "error", err)
		}
	}

	return nil
}

// Get implements license.LicenseService.
func (s *LicenseServiceImpl) Get(ctx context.Context, id string) (license.LicenseResponse, error) {
	userID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return license.LicenseResponse{}, err
	}

	l, err := s.LicenseRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return license.LicenseResponse{}, err
	}
	if l.UserID != userID && !canDecide(role) {
		return license.LicenseResponse{}, license.ErrNotOwner
	}

	return license.NewLicenseResponse(l), nil
}

// List implements license.LicenseService.
func (s *LicenseServiceImpl) List(ctx context.Context, req license.ListLicensesRequest) (license.ListLicensesResponse, error) {
	userID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return license.ListLicensesResponse{}, err
	}

	// Non-privileged callers only ever see their own requests.
	if !canDecide(role) {
		req.UserID = &userID
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	licenses, total, err := s.LicenseRepository.List(ctx, req, companyID)
	if err != nil {
		return license.ListLicensesResponse{}, err
	}

	resp := license.ListLicensesResponse{
		Data:  make([]license.LicenseResponse, 0, len(licenses)),
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}
	for _, l := range licenses {
		resp.Data = append(resp.Data, license.NewLicenseResponse(l))
	}
	return resp, nil
}

// Approve implements license.LicenseService.
func (s *LicenseServiceImpl) Approve(ctx context.Context, id string) (license.LicenseResponse, error) {
	return s.decide(ctx, id, license.StatusApproved, "")
}

// Reject implements license.LicenseService.
func (s *LicenseServiceImpl) Reject(ctx context.Context, id string, reason string) (license.LicenseResponse, error) {
	return s.decide(ctx, id, license.StatusRejected, reason)
}

func (s *LicenseServiceImpl) decide(ctx context.Context, id string, status license.LicenseStatus, reason string) (license.LicenseResponse, error) {
	callerID, companyID, role, err := callerClaims(ctx)
	if err != nil {
		return license.LicenseResponse{}, err
	}
	if !canDecide(role) {
		return license.LicenseResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := s.LicenseRepository.SetStatus(ctx, id, companyID, status, callerID); err != nil {
		return license.LicenseResponse{}, err
	}

	l, err := s.LicenseRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return license.LicenseResponse{}, err
	}

	s.notifyDecision(l, status == license.StatusApproved, reason)

	return license.NewLicenseResponse(l), nil
}

func (s *LicenseServiceImpl) notifyDecision(l license.License, approved bool, reason string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		owner, err := s.UserRepository.GetByID(ctx, l.UserID)
		if err != nil {
			slog.Error("Failed to load license owner for notification", "license_id", l.ID, "error", err)
			return
		}

		if err := s.emailSvc.SendLicenseDecision(owner.Email, owner.Name, l.Type.String(), approved, reason); err != nil {
			slog.Error("Failed to send decision notification", "to", owner.Email, "license_id", l.ID, "error", err)
		}
	}()
}
