// internal/app/features/companies/summary.go
package companies

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
)

// ServeSummary handles GET /companies/summary: totals, age statistics and
// counts by city and by industry.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	start := time.Now()
	sum, err := summaryqueries.CompanySummary(ctx, h.DB)
	metrics.ObserveSummary("company", start)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "company summary failed", err, "Unable to build the company summary.", "/companies")
		return
	}

	h.render(w, r, "companies_summary", summaryData{
		BaseVM:         viewdata.NewBaseVM(r, "Company Summary", "/companies"),
		CompanySummaryData: sum,
	})
}
