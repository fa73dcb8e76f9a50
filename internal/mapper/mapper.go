// Package mapper converts between caller records and persisted BSON documents.
//
// Both storage backends persist the documents produced here, so identifier
// rendering and date normalization live in exactly one place.
package mapper

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"kanban/internal/domain"
)

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return domain.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func requireDate(field string, d domain.Date) error {
	if d.IsZero() {
		return domain.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// docReader pulls typed fields out of a raw document and keeps the first failure.
type docReader struct {
	raw bson.Raw
	err error
}

func (r *docReader) lookup(key string, want bsontype.Type) (bson.RawValue, bool) {
	if r.err != nil {
		return bson.RawValue{}, false
	}
	v, err := r.raw.LookupErr(key)
	if err != nil {
		r.err = fmt.Errorf("%w: missing %q", domain.ErrMalformedDocument, key)
		return bson.RawValue{}, false
	}
	if want != 0 && v.Type != want {
		r.err = fmt.Errorf("%w: %q is %s, want %s", domain.ErrMalformedDocument, key, v.Type, want)
		return bson.RawValue{}, false
	}
	return v, true
}

func (r *docReader) id() string {
	v, ok := r.lookup("_id", bsontype.ObjectID)
	if !ok {
		return ""
	}
	return v.ObjectID().Hex()
}

func (r *docReader) str(key string) string {
	v, ok := r.lookup(key, bsontype.String)
	if !ok {
		return ""
	}
	return v.StringValue()
}

func (r *docReader) date(key string) domain.Date {
	s := r.str(key)
	if r.err != nil {
		return domain.Date{}
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		r.err = fmt.Errorf("%w: %q: %v", domain.ErrMalformedDocument, key, err)
	}
	return d
}

// integer accepts every numeric width drivers write for small integers.
func (r *docReader) integer(key string) int {
	v, ok := r.lookup(key, 0)
	if !ok {
		return 0
	}
	switch v.Type {
	case bsontype.Int32:
		return int(v.Int32())
	case bsontype.Int64:
		return int(v.Int64())
	case bsontype.Double:
		f := v.Double()
		if f == float64(int(f)) {
			return int(f)
		}
	}
	r.err = fmt.Errorf("%w: %q is %s, want integer", domain.ErrMalformedDocument, key, v.Type)
	return 0
}

func (r *docReader) strings(key string) []string {
	v, ok := r.lookup(key, bsontype.Array)
	if !ok {
		return nil
	}
	values, err := v.Array().Values()
	if err != nil {
		r.err = fmt.Errorf("%w: %q: %v", domain.ErrMalformedDocument, key, err)
		return nil
	}
	out := make([]string, 0, len(values))
	for i, item := range values {
		s, ok := item.StringValueOK()
		if !ok {
			r.err = fmt.Errorf("%w: %q[%d] is %s, want string", domain.ErrMalformedDocument, key, i, item.Type)
			return nil
		}
		out = append(out, s)
	}
	return out
}
