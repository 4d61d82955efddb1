package report

import "context"

type ReportRepository interface {
	// MaterializeEmployeeCounts recomputes the per-company active
	// headcount table in one statement. Returns rows written.
	MaterializeEmployeeCounts(ctx context.Context) (int64, error)

	ListEmployeeCounts(ctx context.Context) ([]EmployeeCount, error)
}
