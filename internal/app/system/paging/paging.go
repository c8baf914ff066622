// Package paging implements the keyset pagination used by the company and
// mentor lists (sorted by name_ci, _id) and the offset pagination used by
// the session list (sorted by date).
package paging

import (
	"context"
	"net/http"
	"strconv"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the number of rows shown in paged lists.
const PageSize = 25

// LimitPlusOne returns PageSize+1 for look-ahead pagination
// (fetch one extra document to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// ParseStart extracts the "start" query parameter (1-based index).
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Result holds the output of TrimPage.
type Result struct {
	HasPrev bool
	HasNext bool
}

// TrimPage trims a slice fetched with LimitPlusOne.
//
// When going backwards (before != ""), an extra row means an older page
// exists and the first element is dropped; HasNext is always true.
// Otherwise an extra row means a next page exists; HasPrev is true only
// when after != "".
func TrimPage[T any](rows *[]T, before, after string) Result {
	orig := len(*rows)
	var res Result
	if before != "" {
		if orig > PageSize {
			*rows = (*rows)[1:]
			res.HasPrev = true
		}
		res.HasNext = true
		return res
	}
	if orig > PageSize {
		*rows = (*rows)[:PageSize]
		res.HasNext = true
	}
	res.HasPrev = after != ""
	return res
}

// Range holds display range values for a paginated list.
type Range struct {
	Start     int // 1-based start index (0 if no results)
	End       int // 1-based end index (0 if no results)
	PrevStart int // start value for previous page link
	NextStart int // start value for next page link
}

// ComputeRange calculates display range values given the current start
// index and number of rows shown.
func ComputeRange(start, shown int) Range {
	if shown == 0 {
		return Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}
	}
	prevStart := start - PageSize
	if prevStart < 1 {
		prevStart = 1
	}
	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: prevStart,
		NextStart: start + shown,
	}
}

// Direction indicates the pagination direction.
type Direction int

const (
	Forward  Direction = iota // sort ascending, "gt" cursor
	Backward                  // sort descending, "lt" cursor
)

// KeysetConfig holds the result of configuring keyset pagination.
type KeysetConfig struct {
	Direction Direction
	SortOrder int // 1 for ascending, -1 for descending
	Cursor    *wafflemongo.Cursor
}

// ConfigureKeyset determines pagination direction and decodes the cursor.
// A before cursor wins over an after cursor.
func ConfigureKeyset(before, after string) KeysetConfig {
	cfg := KeysetConfig{Direction: Forward, SortOrder: 1}
	switch {
	case before != "":
		cfg.Direction = Backward
		cfg.SortOrder = -1
		if c, ok := wafflemongo.DecodeCursor(before); ok {
			cfg.Cursor = &c
		}
	case after != "":
		if c, ok := wafflemongo.DecodeCursor(after); ok {
			cfg.Cursor = &c
		}
	}
	return cfg
}

// ApplyToFind configures sort and limit for keyset pagination.
func (cfg KeysetConfig) ApplyToFind(find *options.FindOptions, sortField string) {
	find.SetSort(bson.D{
		{Key: sortField, Value: cfg.SortOrder},
		{Key: "_id", Value: cfg.SortOrder},
	}).SetLimit(LimitPlusOne())
}

// KeysetWindow returns the cursor condition for the query filter, or nil
// when no cursor is set.
func (cfg KeysetConfig) KeysetWindow(sortField string) bson.M {
	if cfg.Cursor == nil {
		return nil
	}
	dir := "gt"
	if cfg.Direction == Backward {
		dir = "lt"
	}
	return wafflemongo.KeysetWindow(sortField, dir, cfg.Cursor.CI, cfg.Cursor.ID)
}

// Reverse reverses a slice in place.
func Reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}

// BuildCursors creates prev/next cursor strings from the first and last rows.
func BuildCursors[T any](rows []T, keyFn func(T) string, idFn func(T) primitive.ObjectID) (prev, next string) {
	if len(rows) == 0 {
		return "", ""
	}
	first := rows[0]
	last := rows[len(rows)-1]
	return wafflemongo.EncodeCursor(keyFn(first), idFn(first)),
		wafflemongo.EncodeCursor(keyFn(last), idFn(last))
}

// Window is one keyset page of rows plus what the list template needs to
// draw its pager.
type Window[T any] struct {
	Rows       []T
	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevCursor string
	NextCursor string
}

// Keyset describes a keyset-paged query over one collection.
type Keyset[T any] struct {
	SortField string // case-folded string field, e.g. "name_ci"
	Before    string
	After     string
	Key       func(T) string
	ID        func(T) primitive.ObjectID
}

// Fetch counts the rows matching base, then loads the page selected by the
// cursors in ks. base is not modified.
func Fetch[T any](ctx context.Context, c *mongo.Collection, base bson.M, ks Keyset[T]) (Window[T], error) {
	var w Window[T]
	total, err := c.CountDocuments(ctx, base)
	if err != nil {
		return w, err
	}
	w.Total = total

	cfg := ConfigureKeyset(ks.Before, ks.After)
	find := options.Find()
	cfg.ApplyToFind(find, ks.SortField)

	f := base
	if win := cfg.KeysetWindow(ks.SortField); win != nil {
		if len(base) == 0 {
			f = win
		} else {
			f = bson.M{"$and": []bson.M{base, win}}
		}
	}

	cur, err := c.Find(ctx, f, find)
	if err != nil {
		return w, err
	}
	defer cur.Close(ctx)

	rows := []T{}
	if err := cur.All(ctx, &rows); err != nil {
		return w, err
	}
	if cfg.Direction == Backward {
		Reverse(rows)
	}
	page := TrimPage(&rows, ks.Before, ks.After)

	w.Rows = rows
	w.HasPrev = page.HasPrev
	w.HasNext = page.HasNext
	w.PrevCursor, w.NextCursor = BuildCursors(rows, ks.Key, ks.ID)
	return w, nil
}
