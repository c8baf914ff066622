// internal/app/features/companies/handler.go
package companies

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/flash"
	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Flash messages shown after a successful write.
const (
	MsgCreated = "Company successfully created!"
	MsgUpdated = "Company details updated successfully!"
	MsgDeleted = "Company deleted."
)

// Handler is the feature-level entry point for Companies.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Log    *zap.Logger

	// Now supplies "today" for age derivation and date checks.
	Now func() time.Time
	// Render hands a template name and view model to the page renderer.
	Render render.Func
	// Flash queues a one-shot message for the page after a redirect.
	Flash func(w http.ResponseWriter, r *http.Request, msg string)
}

// NewHandler constructs a Companies handler bound to a DB and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Audit:  audit,
		Log:    logger,
		Now:    time.Now,
		Render: render.Template,
		Flash:  flash.Add,
	}
}

func (h *Handler) today() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	render.Or(h.Render)(w, r, name, data)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Flash != nil {
		h.Flash(w, r, msg)
	}
}
