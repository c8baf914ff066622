// internal/app/features/companies/export.go
package companies

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/export"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeExport handles GET /companies/export: an XLSX workbook with every
// company plus the summary sheets.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "export companies")
	defer cancel()

	wb, rows, err := BuildWorkbook(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build companies workbook failed", err, "Unable to export companies.", "/companies")
		return
	}
	defer wb.Close()

	if err := wb.Serve(w, export.Filename("companies", h.today())); err != nil {
		// Headers are already sent; all that is left is to log.
		h.Log.Warn("write companies workbook failed", zap.Error(err))
		return
	}

	metrics.Exported(audit.EntityCompany, rows)
	h.Audit.RecordsExported(context.WithoutCancel(ctx), r, audit.EntityCompany, rows)
}
