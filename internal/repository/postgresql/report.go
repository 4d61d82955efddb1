package postgresql

import (
	"context"
	"fmt"

	"github.com/timedesk/timeclock-backend-go/internal/domain/report"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// MaterializeEmployeeCounts implements report.ReportRepository.
func (r *reportRepository) MaterializeEmployeeCounts(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_count_reports (company_id, active_count, computed_at)
		SELECT c.id, COUNT(u.id) FILTER (WHERE u.is_active), NOW()
		FROM companies c
		LEFT JOIN users u ON u.company_id = c.id
		GROUP BY c.id
		ON CONFLICT (company_id) DO UPDATE
		SET active_count = EXCLUDED.active_count, computed_at = EXCLUDED.computed_at
	`

	tag, err := q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to materialize employee counts: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListEmployeeCounts implements report.ReportRepository.
func (r *reportRepository) ListEmployeeCounts(ctx context.Context) ([]report.EmployeeCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.company_id, c.name, r.active_count, r.computed_at
		FROM employee_count_reports r
		JOIN companies c ON c.id = r.company_id
		ORDER BY c.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee counts: %w", err)
	}
	defer rows.Close()

	var counts []report.EmployeeCount
	for rows.Next() {
		var ec report.EmployeeCount
		if err := rows.Scan(&ec.ID, &ec.CompanyID, &ec.CompanyName, &ec.ActiveCount, &ec.ComputedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee count: %w", err)
		}
		counts = append(counts, ec)
	}
	return counts, rows.Err()
}
