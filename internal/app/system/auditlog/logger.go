// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destination settings accepted by Config.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout).
	Auth string
	// Admin controls logging for record changes, recounts and exports.
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and to zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Entity != "" {
		fields = append(fields, zap.String("entity", event.Entity))
	}
	if event.EntityID != nil {
		fields = append(fields, zap.String("entity_id", event.EntityID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so handlers under test can run without one.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if (setting == All || setting == DB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func requestEvent(r *http.Request, category, eventType string, success bool) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   success,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, authMethod, loginID string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginSuccess, true)
	e.ActorID = &userID
	e.ActorName = loginID
	e.Details = map[string]string{"auth_method": authMethod}
	l.Log(ctx, e)
}

// LoginFailedUserNotFound logs a login attempt for an unknown login ID.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedLoginID string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedUserNotFound, false)
	e.FailureReason = "user not found"
	e.Details = map[string]string{"attempted_login_id": attemptedLoginID}
	l.Log(ctx, e)
}

// LoginFailedWrongPassword logs a bad password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, loginID string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedWrongPassword, false)
	e.ActorID = &userID
	e.ActorName = loginID
	e.FailureReason = "wrong password"
	l.Log(ctx, e)
}

// LoginFailedUserDisabled logs a login attempt by a disabled account.
func (l *Logger) LoginFailedUserDisabled(ctx context.Context, r *http.Request, userID primitive.ObjectID, loginID string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLoginFailedUserDisabled, false)
	e.ActorID = &userID
	e.ActorName = loginID
	e.FailureReason = "user disabled"
	l.Log(ctx, e)
}

// Logout logs a user logout. userIDStr may be empty or malformed when the
// session had already expired.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	e := requestEvent(r, audit.CategoryAuth, audit.EventLogout, true)
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		e.ActorID = &oid
	}
	l.Log(ctx, e)
}

// --- Record Events ---

// adminEvent builds an admin event attributed to the signed-in user on r.
func adminEvent(r *http.Request, eventType string) audit.Event {
	e := requestEvent(r, audit.CategoryAdmin, eventType, true)
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			e.ActorID = &oid
		}
		e.ActorName = u.Name
	}
	return e
}

func (l *Logger) record(ctx context.Context, r *http.Request, eventType, entity string, id primitive.ObjectID, label string) {
	if l == nil {
		return
	}
	e := adminEvent(r, eventType)
	e.Entity = entity
	e.EntityID = &id
	e.EntityLabel = label
	l.Log(ctx, e)
}

// RecordCreated logs the creation of a group, company, mentor, session or indicator.
func (l *Logger) RecordCreated(ctx context.Context, r *http.Request, entity string, id primitive.ObjectID, label string) {
	l.record(ctx, r, audit.EventRecordCreated, entity, id, label)
}

// RecordUpdated logs an edit.
func (l *Logger) RecordUpdated(ctx context.Context, r *http.Request, entity string, id primitive.ObjectID, label string) {
	l.record(ctx, r, audit.EventRecordUpdated, entity, id, label)
}

// RecordDeleted logs a delete, including any cascade counts in details.
func (l *Logger) RecordDeleted(ctx context.Context, r *http.Request, entity string, id primitive.ObjectID, label string, cascaded map[string]int64) {
	if l == nil {
		return
	}
	e := adminEvent(r, audit.EventRecordDeleted)
	e.Entity = entity
	e.EntityID = &id
	e.EntityLabel = label
	if len(cascaded) > 0 {
		e.Details = make(map[string]string, len(cascaded))
		for k, n := range cascaded {
			e.Details[k] = strconv.FormatInt(n, 10)
		}
	}
	l.Log(ctx, e)
}

// MentorsRecounted logs a bulk companies_assigned refresh.
func (l *Logger) MentorsRecounted(ctx context.Context, r *http.Request, updated int) {
	if l == nil {
		return
	}
	e := adminEvent(r, audit.EventMentorsRecounted)
	e.Entity = audit.EntityMentor
	e.Details = map[string]string{"updated": strconv.Itoa(updated)}
	l.Log(ctx, e)
}

// RecordsExported logs an XLSX download.
func (l *Logger) RecordsExported(ctx context.Context, r *http.Request, entity string, rows int) {
	if l == nil {
		return
	}
	e := adminEvent(r, audit.EventRecordsExported)
	e.Entity = entity
	e.Details = map[string]string{"rows": strconv.Itoa(rows)}
	l.Log(ctx, e)
}
