package http

import (
	"net/http"

	"github.com/timedesk/timeclock-backend-go/internal/domain/report"
	"github.com/timedesk/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	EmployeeCounts(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportRepo report.ReportRepository
}

func NewReportHandler(reportRepo report.ReportRepository) ReportHandler {
	return &ReportHandlerImpl{reportRepo: reportRepo}
}

// EmployeeCounts returns the materialized per-company headcounts.
func (h *ReportHandlerImpl) EmployeeCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reportRepo.ListEmployeeCounts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	type item struct {
		CompanyID   string `json:"company_id"`
		CompanyName string `json:"company_name"`
		ActiveCount int    `json:"active_count"`
		ComputedAt  string `json:"computed_at"`
	}
	items := make([]item, 0, len(counts))
	for _, ec := range counts {
		items = append(items, item{
			CompanyID:   ec.CompanyID,
			CompanyName: ec.CompanyName,
			ActiveCount: ec.ActiveCount,
			ComputedAt:  ec.ComputedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	response.Success(w, items)
}
