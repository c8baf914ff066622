// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("groups", groupsSchema())
	ensure("companies", companiesSchema())
	ensure("mentors", mentorsSchema())
	ensure("mentorship_sessions", sessionsSchema())
	ensure("indicators", indicatorsSchema())

	// These don't strictly need validators; we still ensure the collections exist.
	ensure("audit_events", nil)
	ensure("oauth_states", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func stringEnum(values []string) bson.A {
	out := bson.A{}
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func usersSchema() bson.M {
	methods := make([]string, 0, len(models.AllAuthMethods))
	for _, m := range models.AllAuthMethods {
		methods = append(methods, m.Value)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "login_id", "roles", "status", "auth_method"},
			"properties": bson.M{
				"full_name":    nonBlank,
				"full_name_ci": nonBlank,
				"login_id":     nonBlank,
				"login_id_ci":  bson.M{"bsonType": "string"},
				"email":        bson.M{"bsonType": bson.A{"string", "null"}},
				"roles": bson.M{
					"bsonType": "array",
					"minItems": 1,
					"items":    bson.M{"enum": stringEnum(roles.All)},
				},
				"status":      bson.M{"enum": bson.A{models.StatusActive, models.StatusDisabled}},
				"auth_method": bson.M{"enum": stringEnum(methods)},
			},
		},
	}
}

func groupsSchema() bson.M {
	names := make([]string, 0, len(models.GroupChoices))
	for _, c := range models.GroupChoices {
		names = append(names, c.Value)
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name"},
			"properties": bson.M{
				"name":        bson.M{"enum": stringEnum(names)},
				"description": bson.M{"bsonType": "string"},
			},
		},
	}
}

func companiesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"company_id", "name", "name_ci"},
			"properties": bson.M{
				"company_id":    bson.M{"bsonType": "string", "minLength": 1, "maxLength": 15},
				"name":          bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200, "pattern": ".*\\S.*"},
				"name_ci":       nonBlank,
				"is_active":     bson.M{"bsonType": "bool"},
				"group_id":      bson.M{"bsonType": bson.A{"objectId", "null"}},
				"founding_date": bson.M{"bsonType": bson.A{"date", "null"}},
				"age":           bson.M{"bsonType": bson.A{"int", "long", "null"}, "minimum": 0},
			},
		},
	}
}

func mentorsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "name_ci", "companies_assigned"},
			"properties": bson.M{
				"name":               bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200, "pattern": ".*\\S.*"},
				"name_ci":            nonBlank,
				"group_id":           bson.M{"bsonType": bson.A{"objectId", "null"}},
				"companies_assigned": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"total_hours":        bson.M{"bsonType": bson.A{"int", "long", "null"}, "minimum": 0},
			},
		},
	}
}

func sessionsSchema() bson.M {
	rating := bson.M{"enum": stringEnum(append([]string{""}, models.Ratings...))}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"mentor_id", "company_id", "date"},
			"properties": bson.M{
				"mentor_id":   bson.M{"bsonType": "objectId"},
				"company_id":  bson.M{"bsonType": "objectId"},
				"date":        bson.M{"bsonType": "date"},
				"start_time":  bson.M{"bsonType": "string"},
				"end_time":    bson.M{"bsonType": "string"},
				"duration":    bson.M{"bsonType": bson.A{"double", "null"}},
				"punctuality": rating,
				"engagement":  rating,
			},
		},
	}
}

func indicatorsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"company_id", "category", "name", "score"},
			"properties": bson.M{
				"company_id":  bson.M{"bsonType": "objectId"},
				"category":    nonBlank,
				"name":        nonBlank,
				"score":       bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
				"measured_on": bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}
