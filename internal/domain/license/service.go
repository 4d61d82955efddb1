package license

import (
	"context"
)

// LicenseService defines the absence-request lifecycle: PENDING at
// submission, then an admin decision to APPROVED or REJECTED.
type LicenseService interface {
	// Submit creates a request for the caller, storing attachments and
	// firing notification emails. Email failure never rolls it back.
	Submit(ctx context.Context, req CreateLicenseRequest) (LicenseResponse, error)

	// Edit applies changes for the owner. Rejected requests are immutable.
	Edit(ctx context.Context, req EditLicenseRequest) (LicenseResponse, error)

	// DeleteFile removes one attachment and its backing file.
	DeleteFile(ctx context.Context, req DeleteFileRequest) error

	// Delete removes the request with its documents and backing files.
	Delete(ctx context.Context, id string) error

	// Get returns one request visible to the caller.
	Get(ctx context.Context, id string) (LicenseResponse, error)

	// List returns the caller's requests, or any user's for admins.
	List(ctx context.Context, req ListLicensesRequest) (ListLicensesResponse, error)

	// Approve and Reject are admin/supervisor transitions from PENDING.
	Approve(ctx context.Context, id string) (LicenseResponse, error)
	Reject(ctx context.Context, id string, reason string) (LicenseResponse, error)
}
