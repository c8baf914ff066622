// internal/app/store/companies/companystore.go
package companystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/txn"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db     *mongo.Database
	c      *mongo.Collection
	groups *mongo.Collection
	log    *zap.Logger
}

// ErrDuplicateCompanyID is returned when company_id is already taken.
var ErrDuplicateCompanyID = apperr.Validation("company_id", "A company with this Company ID already exists.")

// ErrGroupMissing is returned when group_id names no existing group.
var ErrGroupMissing = apperr.Validation("group_id", "The selected group no longer exists.")

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("companies"), groups: db.Collection("groups"), log: zap.L()}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Company, error) {
	var c models.Company
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Company{}, apperr.NotFound("company", id.Hex())
		}
		return models.Company{}, apperr.Store("find company", err)
	}
	return c, nil
}

// checkGroup verifies that a set group_id refers to an existing group.
func (s *Store) checkGroup(ctx context.Context, groupID *primitive.ObjectID) error {
	if groupID == nil {
		return nil
	}
	n, err := s.groups.CountDocuments(ctx, bson.M{"_id": *groupID})
	if err != nil {
		return apperr.Store("check group", err)
	}
	if n == 0 {
		return ErrGroupMissing
	}
	return nil
}

func prepare(c *models.Company, today time.Time) {
	c.CompanyID = normalize.CompanyID(c.CompanyID)
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	c.Email = normalize.Email(c.Email)
	c.Phone = normalize.Phone(c.Phone)
	if c.FoundingDate != nil {
		d := rules.Civil(*c.FoundingDate)
		c.FoundingDate = &d
	}
	rules.ApplyCompanyAge(c, today)
}

// Create inserts c, deriving age from the founding date as of today.
func (s *Store) Create(ctx context.Context, c models.Company, today time.Time) (models.Company, error) {
	if err := s.checkGroup(ctx, c.GroupID); err != nil {
		return models.Company{}, err
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	prepare(&c, today)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Company{}, ErrDuplicateCompanyID
		}
		return models.Company{}, apperr.Store("insert company", err)
	}
	return c, nil
}

// Update replaces the editable fields of company id with those of c and
// re-derives age as of today. When c has no founding date the stored age is
// left as it was.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, c models.Company, today time.Time) (models.Company, error) {
	if err := s.checkGroup(ctx, c.GroupID); err != nil {
		return models.Company{}, err
	}
	prepare(&c, today)
	set := bson.M{
		"company_id":    c.CompanyID,
		"is_active":     c.IsActive,
		"name":          c.Name,
		"name_ci":       c.NameCI,
		"owner_name":    c.OwnerName,
		"email":         c.Email,
		"phone":         c.Phone,
		"industry":      c.Industry,
		"company_size":  c.CompanySize,
		"description":   c.Description,
		"address":       c.Address,
		"city":          c.City,
		"state":         c.State,
		"group_id":      c.GroupID,
		"founding_date": c.FoundingDate,
		"updated_at":    time.Now().UTC(),
	}
	if c.FoundingDate != nil {
		set["age"] = c.Age
	}

	var out models.Company
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Company{}, apperr.NotFound("company", id.Hex())
		}
		if wafflemongo.IsDup(err) {
			return models.Company{}, ErrDuplicateCompanyID
		}
		return models.Company{}, apperr.Store("update company", err)
	}
	return out, nil
}

// Delete removes a company together with its sessions and indicators. It
// returns how many dependent records were removed, keyed by collection.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (map[string]int64, error) {
	var removed map[string]int64
	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		removed = map[string]int64{}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return apperr.NotFound("company", id.Hex())
		}
		for _, coll := range []string{"mentorship_sessions", "indicators"} {
			dr, err := s.db.Collection(coll).DeleteMany(ctx, bson.M{"company_id": id})
			if err != nil {
				return err
			}
			removed[coll] = dr.DeletedCount
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Store("delete company", err)
	}
	return removed, nil
}

// ListFilter narrows the company list. Zero values mean no filter.
type ListFilter struct {
	Search   string // prefix of name (case-insensitive) or company_id
	GroupID  *primitive.ObjectID
	Industry string
	Active   *bool
	Before   string
	After    string
}

func (f ListFilter) bson() bson.M {
	m := bson.M{}
	if q := text.Fold(f.Search); q != "" {
		hi := q + "\uffff"
		cid := normalize.CompanyID(f.Search)
		m["$or"] = []bson.M{
			{"name_ci": bson.M{"$gte": q, "$lt": hi}},
			{"company_id": bson.M{"$gte": cid, "$lt": cid + "\uffff"}},
		}
	}
	if f.GroupID != nil {
		m["group_id"] = *f.GroupID
	}
	if f.Industry != "" {
		m["industry"] = f.Industry
	}
	if f.Active != nil {
		m["is_active"] = *f.Active
	}
	return m
}

// List returns one page of companies ordered by name.
func (s *Store) List(ctx context.Context, f ListFilter) (paging.Window[models.Company], error) {
	w, err := paging.Fetch(ctx, s.c, f.bson(), paging.Keyset[models.Company]{
		SortField: "name_ci",
		Before:    f.Before,
		After:     f.After,
		Key:       func(c models.Company) string { return c.NameCI },
		ID:        func(c models.Company) primitive.ObjectID { return c.ID },
	})
	if err != nil {
		return w, apperr.Store("list companies", err)
	}
	return w, nil
}

// All returns every company ordered by company_id, for exports.
func (s *Store) All(ctx context.Context) ([]models.Company, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "company_id", Value: 1}}))
	if err != nil {
		return nil, apperr.Store("list companies", err)
	}
	defer cur.Close(ctx)
	out := []models.Company{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode companies", err)
	}
	return out, nil
}

// Industries returns the distinct non-empty industries, sorted.
func (s *Store) Industries(ctx context.Context) ([]string, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"industry": bson.M{"$nin": bson.A{"", nil}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$industry"}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return nil, apperr.Store("list industries", err)
	}
	defer cur.Close(ctx)
	var out []string
	for cur.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, apperr.Store("decode industries", err)
		}
		out = append(out, row.ID)
	}
	return out, cur.Err()
}

// CountByGroup returns how many companies have group_id == groupID. A nil
// group counts nothing and returns 0.
func (s *Store) CountByGroup(ctx context.Context, groupID *primitive.ObjectID) (int64, error) {
	if groupID == nil {
		return 0, nil
	}
	return s.c.CountDocuments(ctx, bson.M{"group_id": *groupID})
}
