// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	loginstore "github.com/dalemusser/mentorhub/internal/app/store/logins"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	metricsstore "github.com/dalemusser/mentorhub/internal/app/store/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// recentSessions is how many sessions the dashboard lists.
const recentSessions = 5

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
	Now func() time.Time

	Render render.Func
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Now:    time.Now,
		Render: render.Template,
	}
}

type recentSession struct {
	ID          string
	Date        string
	StartTime   string
	MentorName  string
	CompanyName string
	Topics      string
}

type dashboardData struct {
	viewdata.BaseVM

	Counts         metricsstore.Counts
	Recent         []recentSession
	PreviousLogin  string
	PreviousFromIP string
}

// ServeDashboard handles GET /dashboard. Both roles see the same counts;
// the layout decides which write actions are offered.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	_, uname, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
		Counts: metricsstore.FetchDashboardCounts(ctx, h.DB, h.Now().UTC()),
	}

	// The panels below are informational; a failure leaves them empty.
	if rows, err := sessionstore.New(h.DB).Recent(ctx, recentSessions); err != nil {
		h.Log.Warn("dashboard: recent sessions", zap.Error(err))
	} else if len(rows) > 0 {
		mentors, _ := lookup.MentorOptions(ctx, h.DB)
		companies, _ := lookup.CompanyOptions(ctx, h.DB, false)
		mentorNames, companyNames := lookup.Labels(mentors), lookup.Labels(companies)
		for _, s := range rows {
			d := s.Date
			data.Recent = append(data.Recent, recentSession{
				ID:          s.ID.Hex(),
				Date:        rules.FormatDate(&d),
				StartTime:   s.StartTime,
				MentorName:  mentorNames[s.MentorID],
				CompanyName: companyNames[s.CompanyID],
				Topics:      s.TopicsCovered,
			})
		}
	}

	if !uid.IsZero() {
		prev, err := loginstore.New(h.DB).Previous(ctx, uid)
		switch {
		case err != nil:
			h.Log.Warn("dashboard: previous login", zap.Error(err))
		case prev != nil:
			data.PreviousLogin = prev.CreatedAt.UTC().Format("2006-01-02 15:04 MST")
			data.PreviousFromIP = prev.IP
		}
	}

	h.Log.Debug("dashboard served", zap.String("user", uname))
	render.Or(h.Render)(w, r, "dashboard", data)
}
