package convert

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// ToProperties copies the columns of r onto target, skipping the names in
// skip.
//
// target is a pointer to a struct or a string-keyed map. Struct fields are
// matched by `record` tag, then by name without regard to case; only
// exported fields take part. In strict mode a column without a matching field
// (or, for maps, without an existing key) fails with a schema mismatch.
// Otherwise such columns are skipped for structs and added for maps. Numbers
// convert between numeric kinds; any other type change, integer to string
// included, fails with a schema mismatch. A nil column zeroes its field.
func ToProperties(target any, r types.Record, skip []string, strict bool) error {
	rv := reflect.ValueOf(target)
	switch {
	case rv.Kind() == reflect.Map && rv.IsNil():
		return rkerrors.InvalidInput("convert: nil map target")
	case rv.Kind() == reflect.Map:
		// Decode through a pointer to the same map so the caller's map is
		// updated in place.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return toMap(ptr, without(r, skip), strict)
	case rv.Kind() != reflect.Pointer || rv.IsNil():
		return rkerrors.InvalidInput("convert: target must be a non-nil pointer or a map, got %T", target)
	}

	switch rv.Elem().Kind() {
	case reflect.Struct:
		return decode(target, without(r, skip), &mapstructure.DecoderConfig{
			ErrorUnused: strict,
			ZeroFields:  true,
		})
	case reflect.Map:
		return toMap(rv, without(r, skip), strict)
	}
	return rkerrors.InvalidInput("convert: unsupported target %T", target)
}

// toMap decodes r into the map behind ptr. Existing keys are kept unless r
// overwrites them.
func toMap(ptr reflect.Value, r types.Record, strict bool) error {
	m := ptr.Elem()
	if m.Type().Key().Kind() != reflect.String {
		return rkerrors.InvalidInput("convert: map target must have string keys, got %s", m.Type())
	}
	if strict {
		for _, col := range r.Columns() {
			if !m.MapIndex(reflect.ValueOf(col).Convert(m.Type().Key())).IsValid() {
				return rkerrors.SchemaMismatch("%s must have key %q", m.Type(), col)
			}
		}
	}
	return decode(ptr.Interface(), r, &mapstructure.DecoderConfig{})
}

func decode(result any, r types.Record, cfg *mapstructure.DecoderConfig) error {
	cfg.Result = result
	cfg.TagName = "record"
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return rkerrors.InvalidInput("convert: %v", err)
	}
	if err := dec.Decode(r); err != nil {
		return rkerrors.SchemaMismatch("%T: %v", result, err)
	}
	return nil
}

// without returns r minus the skipped columns. r itself is not modified.
func without(r types.Record, skip []string) types.Record {
	if len(skip) == 0 {
		return r
	}
	out := r.Clone()
	for _, col := range skip {
		delete(out, col)
	}
	return out
}
