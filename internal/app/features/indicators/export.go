// internal/app/features/indicators/export.go
package indicators

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	indicatorstore "github.com/dalemusser/mentorhub/internal/app/store/indicators"
	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/app/system/export"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var indicatorHeader = []string{"Company", "Category", "Name", "Score", "Unit", "Measured on", "Notes"}

// ServeExport handles GET /indicators/export.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "export indicators")
	defer cancel()

	wb, rows, err := BuildWorkbook(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build indicators workbook failed", err, "Unable to export indicators.", "/indicators")
		return
	}
	defer wb.Close()

	if err := wb.Serve(w, export.Filename("indicators", h.today())); err != nil {
		h.Log.Warn("write indicators workbook failed", zap.Error(err))
		return
	}

	metrics.Exported(audit.EntityIndicator, rows)
	h.Audit.RecordsExported(context.WithoutCancel(ctx), r, audit.EntityIndicator, rows)
}

// BuildWorkbook returns the indicators workbook and the number of indicator rows.
func BuildWorkbook(ctx context.Context, db *mongo.Database) (*export.Workbook, int, error) {
	all, err := indicatorstore.New(db).All(ctx)
	if err != nil {
		return nil, 0, err
	}
	companies, err := lookup.CompanyOptions(ctx, db, false)
	if err != nil {
		return nil, 0, err
	}
	stats, err := summaryqueries.IndicatorSummary(ctx, db)
	if err != nil {
		return nil, 0, err
	}
	names := lookup.Labels(companies)

	rows := make([][]any, 0, len(all))
	for _, ind := range all {
		var measured any
		if ind.MeasuredOn != nil {
			measured = *ind.MeasuredOn
		}
		rows = append(rows, []any{
			names[ind.CompanyID], ind.Category, ind.Name, ind.Score, ind.Unit, measured, ind.Notes,
		})
	}

	summary := make([][]any, 0, len(stats))
	for _, s := range stats {
		summary = append(summary, []any{s.Category, s.AvgScore, s.MinScore, s.MaxScore})
	}

	wb, err := export.NewWorkbook([]export.Sheet{
		{Title: "Indicators", Header: indicatorHeader, Rows: rows},
		{Title: "By Category", Header: []string{"Category", "Average", "Minimum", "Maximum"}, Rows: summary},
	})
	if err != nil {
		return nil, 0, err
	}
	return wb, len(rows), nil
}
