// internal/app/store/indicators/indicatorstore.go
package indicatorstore

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c         *mongo.Collection
	companies *mongo.Collection
}

var errCompanyMissing = apperr.Validation("company_id", "The selected company no longer exists.")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("indicators"), companies: db.Collection("companies")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Indicator, error) {
	var ind models.Indicator
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ind); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Indicator{}, apperr.NotFound("indicator", id.Hex())
		}
		return models.Indicator{}, apperr.Store("find indicator", err)
	}
	return ind, nil
}

func (s *Store) prepare(ctx context.Context, ind *models.Indicator) error {
	n, err := s.companies.CountDocuments(ctx, bson.M{"_id": ind.CompanyID})
	if err != nil {
		return apperr.Store("check company", err)
	}
	if n == 0 {
		return errCompanyMissing
	}
	ind.Category = strings.TrimSpace(ind.Category)
	ind.Name = strings.TrimSpace(ind.Name)
	if ind.MeasuredOn != nil {
		d := rules.Civil(*ind.MeasuredOn)
		ind.MeasuredOn = &d
	}
	return nil
}

func (s *Store) Create(ctx context.Context, ind models.Indicator) (models.Indicator, error) {
	if err := s.prepare(ctx, &ind); err != nil {
		return models.Indicator{}, err
	}
	now := time.Now().UTC()
	ind.ID = primitive.NewObjectID()
	ind.CreatedAt = now
	ind.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ind); err != nil {
		return models.Indicator{}, apperr.Store("insert indicator", err)
	}
	return ind, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, ind models.Indicator) (models.Indicator, error) {
	if err := s.prepare(ctx, &ind); err != nil {
		return models.Indicator{}, err
	}
	set := bson.M{
		"company_id":  ind.CompanyID,
		"category":    ind.Category,
		"name":        ind.Name,
		"score":       ind.Score,
		"unit":        ind.Unit,
		"measured_on": ind.MeasuredOn,
		"notes":       ind.Notes,
		"updated_at":  time.Now().UTC(),
	}
	var out models.Indicator
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Indicator{}, apperr.NotFound("indicator", id.Hex())
		}
		return models.Indicator{}, apperr.Store("update indicator", err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Store("delete indicator", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("indicator", id.Hex())
	}
	return nil
}

// ListFilter narrows the indicator list. Zero values mean no filter.
type ListFilter struct {
	CompanyID *primitive.ObjectID
	Category  string
}

func (f ListFilter) bson() bson.M {
	m := bson.M{}
	if f.CompanyID != nil {
		m["company_id"] = *f.CompanyID
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		m["category"] = c
	}
	return m
}

var byCategory = bson.D{
	{Key: "category", Value: 1},
	{Key: "name", Value: 1},
	{Key: "_id", Value: 1},
}

// List returns up to paging.PageSize indicators ordered by category then
// name, starting at the 1-based row start, plus the total matching count.
func (s *Store) List(ctx context.Context, f ListFilter, start int) ([]models.Indicator, int64, error) {
	filter := f.bson()
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Store("count indicators", err)
	}
	if start < 1 {
		start = 1
	}
	out, err := s.find(ctx, filter, options.Find().
		SetSort(byCategory).
		SetSkip(int64(start-1)).
		SetLimit(int64(paging.PageSize)))
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// All returns every indicator ordered by category then name, for exports.
func (s *Store) All(ctx context.Context) ([]models.Indicator, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(byCategory))
}

// Categories returns the distinct categories in use, sorted.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	res, err := s.c.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, apperr.Store("list categories", err)
	}
	out := make([]string, 0, len(res))
	for _, v := range res {
		if c, ok := v.(string); ok && c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, find *options.FindOptions) ([]models.Indicator, error) {
	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, apperr.Store("list indicators", err)
	}
	defer cur.Close(ctx)
	out := []models.Indicator{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode indicators", err)
	}
	return out, nil
}
