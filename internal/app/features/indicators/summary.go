// internal/app/features/indicators/summary.go
package indicators

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

// ServeSummary handles GET /indicators/summary: average, minimum and
// maximum score per category.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	start := time.Now()
	stats, err := summaryqueries.IndicatorSummary(ctx, h.DB)
	metrics.ObserveSummary("indicator", start)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "indicator summary failed", err, "Unable to build the indicator summary.", "/indicators")
		return
	}

	h.render(w, r, "indicators_summary", summaryData{
		BaseVM:     viewdata.NewBaseVM(r, "Indicator Summary", "/indicators"),
		Categories: stats,
	})
}
