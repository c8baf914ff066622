// Package txn runs multi-collection writes in a MongoDB transaction when
// the deployment supports one, and sequentially otherwise.
//
// Cascading deletes (company → sessions and indicators, mentor → sessions,
// group → cleared references) go through Run so a replica set applies them
// atomically while a standalone dev server still works.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Server error codes that mean "transactions are unavailable here".
const (
	codeIllegalOperation        = 20
	codeNoSuchTransaction       = 51
	codeOperationNotSupportedTx = 263
)

// IsNotSupported reports whether err says the server cannot run a
// transaction (standalone mongod, old server, or session misuse).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeNoSuchTransaction, codeOperationNotSupportedTx:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	has := func(a, b string) bool { return strings.Contains(msg, a) && strings.Contains(msg, b) }
	return has("transaction", "replica set") ||
		has("session", "not supported") ||
		has("transaction", "session") ||
		has("illegal", "operation")
}

// Run executes fn inside a transaction. When the server cannot run
// transactions, it logs once at Info and runs fn directly with ctx.
// fn must be safe to re-run: the driver retries it on transient errors.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Info("transactions unavailable; running writes sequentially", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}
