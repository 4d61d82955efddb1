package report

import "time"

// EmployeeCount is a materialized per-company active headcount row,
// refreshed by the ops CLI.
type EmployeeCount struct {
	ID          string
	CompanyID   string
	CompanyName string
	ActiveCount int
	ComputedAt  time.Time
}
