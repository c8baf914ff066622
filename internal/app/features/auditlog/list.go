// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const pageSize = 50

// ServeList handles GET /audit - displays the audit log list with filtering.
// Only users who may change records may read the trail of those changes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/dashboard")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	category := query.Get(r, "category")
	if !known(category, allCategories()) {
		category = ""
	}
	entity := query.Get(r, "entity")
	if !known(entity, allEntities()) {
		entity = ""
	}
	eventType := query.Get(r, "event_type")
	startDate := query.Get(r, "start_date")
	endDate := query.Get(r, "end_date")

	page := 1
	if p, err := strconv.Atoi(query.Get(r, "page")); err == nil && p > 0 {
		page = p
	}

	filter := audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		Entity:    entity,
		Limit:     pageSize,
		Offset:    int64((page - 1) * pageSize),
	}
	if startDate != "" {
		if t, err := rules.ParseDate(startDate); err == nil {
			filter.StartTime = &t
		} else {
			startDate = ""
		}
	}
	if endDate != "" {
		if t, err := rules.ParseDate(endDate); err == nil {
			endOfDay := t.AddDate(0, 0, 1).Add(-1)
			filter.EndTime = &endOfDay
		} else {
			endDate = ""
		}
	}

	store := audit.New(h.DB)
	events, err := store.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error", err, "A database error occurred.", "/dashboard")
		return
	}
	total, err := store.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error", err, "A database error occurred.", "/dashboard")
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		item := listItem{
			ID:          e.ID.Hex(),
			Timestamp:   e.CreatedAt,
			Category:    e.Category,
			EventType:   e.EventType,
			ActorName:   e.ActorName,
			Entity:      e.Entity,
			EntityLabel: e.EntityLabel,
			IP:          e.IP,
			Success:     e.Success,
			Reason:      e.FailureReason,
			Details:     e.Details,
		}
		if item.ActorName == "" && e.ActorID != nil {
			item.ActorName = e.ActorID.Hex()
		}
		items = append(items, item)
	}

	totalPages := int((total + pageSize - 1) / pageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	prevPage := max(page-1, 1)
	nextPage := min(page+1, totalPages)

	render.Or(h.Render)(w, r, "audit_list", listData{
		BaseVM:     viewdata.NewBaseVM(r, "Audit Log", "/dashboard"),
		Items:      items,
		Category:   category,
		EventType:  eventType,
		Entity:     entity,
		StartDate:  startDate,
		EndDate:    endDate,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
		Entities:   allEntities(),
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		Shown:      len(items),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   prevPage,
		NextPage:   nextPage,
	})
}
