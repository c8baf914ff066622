// Package flash carries one-shot success messages across the
// post/redirect/get hop using gorilla session flashes.
//
// Add queues a message before a redirect. Middleware pops queued messages
// at the start of the next request and exposes them through Messages, so
// view models can pick them up without a ResponseWriter.
package flash

import (
	"context"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"go.uber.org/zap"
)

type ctxKey struct{}

var (
	sessions *auth.SessionManager
	logger   = zap.NewNop()
)

// Init installs the session manager used to persist flashes. Until Init is
// called, Add and Middleware are no-ops (handler tests rely on this).
func Init(sm *auth.SessionManager, log *zap.Logger) {
	sessions = sm
	if log != nil {
		logger = log
	}
}

// Add queues msg for the next page the browser loads.
func Add(w http.ResponseWriter, r *http.Request, msg string) {
	if sessions == nil || msg == "" {
		return
	}
	sess, err := sessions.GetSession(r)
	if err != nil {
		logger.Debug("flash: session decode failed", zap.Error(err))
	}
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		logger.Warn("flash: session save failed", zap.Error(err))
	}
}

// Middleware moves queued flashes from the session into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			next.ServeHTTP(w, r)
			return
		}
		sess, err := sessions.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		raw := sess.Flashes()
		if len(raw) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		if err := sess.Save(r, w); err != nil {
			logger.Warn("flash: session save failed", zap.Error(err))
		}
		msgs := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				msgs = append(msgs, s)
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, msgs)))
	})
}

// Messages returns the flashes popped for this request.
func Messages(r *http.Request) []string {
	msgs, _ := r.Context().Value(ctxKey{}).([]string)
	return msgs
}

// WithMessages returns r carrying msgs as if Middleware had popped them.
func WithMessages(r *http.Request, msgs ...string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, msgs))
}
