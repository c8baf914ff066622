// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"users", ensureUsers},
		{"groups", ensureGroups},
		{"companies", ensureCompanies},
		{"mentors", ensureMentors},
		{"mentorship_sessions", ensureSessions},
		{"indicators", ensureIndicators},
		{"audit_events", ensureAuditEvents},
		{"oauth_states", ensureOAuthStates},
	}
	for _, s := range steps {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// uniqueHint points operators at the aggregation that finds the duplicates
// blocking a unique index.
func uniqueHint(coll, field string) string {
	return fmt.Sprintf(" (duplicates exist on %s.%s; find them with "+
		`db.%s.aggregate([{ $group: { _id: "$%s", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }]))`,
		coll, field, coll, field)
}

func recreate(ctx context.Context, coll *mongo.Collection, dropName string, m mongo.IndexModel, name, sig string, unique *bool) error {
	if _, err := coll.Indexes().DropOne(ctx, dropName); err != nil {
		zap.L().Warn("drop existing index failed",
			zap.String("collection", coll.Name()),
			zap.String("name", dropName),
			zap.Error(err))
		return fmt.Errorf("%s(%s): drop failed: %w", coll.Name(), name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		if isDuplicateKeyErr(err) && unique != nil && *unique {
			field := strings.SplitN(sig, ":", 2)[0]
			return fmt.Errorf("%s(%s): cannot create unique index%s", coll.Name(), name, uniqueHint(coll.Name(), field))
		}
		return fmt.Errorf("%s(%s): %w", coll.Name(), name, err)
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		existing := listIndexes(ctx, coll)
		if ex, ok := existing[desiredSig]; ok {
			switch {
			case sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName):
				log.Debug("reusing existing index")
			case sameBoolPtr(desiredUnique, ex.Unique):
				log.Info("renaming index to align with desired name", zap.String("from", ex.Name))
				if err := recreate(ctx, coll, ex.Name, m, desiredName, desiredSig, desiredUnique); err != nil {
					errs = append(errs, err.Error())
					continue
				}
				log.Info("index renamed", zap.Duration("took", time.Since(start)))
			default:
				// Options mismatch (e.g., upgrading to unique).
				if err := recreate(ctx, coll, ex.Name, m, desiredName, desiredSig, desiredUnique); err != nil {
					errs = append(errs, err.Error())
					continue
				}
				log.Info("index dropped and recreated", zap.Duration("took", time.Since(start)))
			}
			continue
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err == nil {
			log.Info("index ensured",
				zap.String("created_name", created),
				zap.Duration("took", time.Since(start)))
			continue
		}

		if isOptionsConflictErr(err) {
			if match, ok := listIndexes(ctx, coll)[desiredSig]; ok {
				if sameBoolPtr(desiredUnique, match.Unique) {
					log.Info("reusing existing index (post-conflict)", zap.String("existing", match.Name))
					continue
				}
				if rerr := recreate(ctx, coll, match.Name, m, desiredName, desiredSig, desiredUnique); rerr != nil {
					errs = append(errs, rerr.Error())
					continue
				}
				log.Info("index dropped and recreated (post-conflict)", zap.Duration("took", time.Since(start)))
				continue
			}
		}

		if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
			field := strings.SplitN(desiredSig, ":", 2)[0]
			errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index%s", coll.Name(), desiredName, uniqueHint(coll.Name(), field)))
			continue
		}
		log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
		errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Per-collection index sets                                                  */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		// One account per login per auth method.
		{
			Keys:    bson.D{{Key: "login_id_ci", Value: 1}, {Key: "auth_method", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_loginidci_auth"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_status_fullnameci_id"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("groups"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_groups_name"),
		},
	})
}

func ensureCompanies(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("companies"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_companies_companyid"),
		},
		// List page: name order with stable _id tiebreak.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_companies_nameci__id"),
		},
		// companies_assigned recount and the group breakdown.
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}},
			Options: options.Index().SetName("idx_companies_group"),
		},
		{
			Keys:    bson.D{{Key: "industry", Value: 1}},
			Options: options.Index().SetName("idx_companies_industry"),
		},
	})
}

func ensureMentors(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("mentors"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_mentors_nameci"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}},
			Options: options.Index().SetName("idx_mentors_group"),
		},
	})
}

func ensureSessions(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("mentorship_sessions"), []mongo.IndexModel{
		// List page sorts newest first; filters narrow by mentor or company.
		{
			Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_sessions_date_desc"),
		},
		{
			Keys:    bson.D{{Key: "mentor_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_sessions_mentor_date"),
		},
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_sessions_company_date"),
		},
	})
}

func ensureIndicators(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("indicators"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_indicators_category_name"),
		},
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}},
			Options: options.Index().SetName("idx_indicators_company"),
		},
	})
}

func ensureAuditEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("audit_events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_audit_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_audit_category_created"),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_audit_actor_created"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("oauth_states"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_oauth_state"),
		},
		// TTL cleanup
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_oauth_ttl"),
		},
	})
}
