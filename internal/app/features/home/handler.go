package home

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	GoogleEnabled bool

	Render render.Func
}

func NewHandler(db *mongo.Database, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		GoogleEnabled: googleEnabled,
		Render:        render.Template,
	}
}

type homeData struct {
	viewdata.BaseVM
	GoogleEnabled bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := homeData{
		BaseVM:        viewdata.NewBaseVM(r, "Welcome", "/"),
		GoogleEnabled: h.GoogleEnabled,
	}

	render.Or(h.Render)(w, r, "home", data)
}
