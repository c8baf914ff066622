// internal/app/features/mentors/handler.go
package mentors

import (
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/flash"
	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	MsgCreated = "Mentor created."
	MsgUpdated = "Mentor updated."
	MsgDeleted = "Mentor deleted."
)

// Handler serves the mentor pages and the bulk recount action.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Log    *zap.Logger

	Render render.Func
	Flash  func(w http.ResponseWriter, r *http.Request, msg string)
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Audit:  audit,
		Log:    logger,
		Render: render.Template,
		Flash:  flash.Add,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	render.Or(h.Render)(w, r, name, data)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if h.Flash != nil {
		h.Flash(w, r, msg)
	}
}
