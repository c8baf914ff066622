// internal/app/features/indicators/handler.go
package indicators

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

const (
	MsgCreated = "Indicator added successfully!"
	MsgUpdated = "Indicator updated."
	MsgDeleted = "Indicator deleted."
)

// Handler serves the indicator pages.
type Handler struct {
	DB     *mongo.Database
	ErrLog *uierrors.ErrorLogger
	Audit  *auditlog.Logger
	Log    *zap.Logger

	Now    func() time.Time
	Render render.Func
	Flash  func(w http.ResponseWriter, r *http.Request, msg string)
}

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
