package parser

import (
	"fmt"
	"reflect"
)

// Constructor assembles a Tuple's parsed fields into a record. It must be
// safe for concurrent use if the Tuple is shared.
type Constructor func(fields ...any) (any, error)

// StructOf returns a Constructor that fills the exported fields of a T
// struct in declaration order and returns the T value.
//
//	type move struct{ Count, From, To int }
//	moves := lo.Must(parser.NewTuple(
//	    parser.WithFormat("move {:d} from {:d} to {:d}"),
//	    parser.WithEach(parser.NewInt(0)),
//	    parser.WithRecord(parser.StructOf[move]()),
//	))
//
// List values ([]any) fill slice and array fields element by element, so a
// List of Ints fills a []int field. The returned Constructor fails with
// ErrArity when the field count differs and with ErrType when a value cannot
// be assigned or converted to its field. Panics if T is not a struct type.
func StructOf[T any]() Constructor {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("parser: StructOf: %s is not a struct", typ))
	}

	var exported []int
	for i := range typ.NumField() {
		if typ.Field(i).IsExported() {
			exported = append(exported, i)
		}
	}

	return func(fields ...any) (any, error) {
		if len(fields) != len(exported) {
			return nil, fmt.Errorf("%w: %s has %d fields, got %d values",
				ErrArity, typ, len(exported), len(fields))
		}

		rec := reflect.New(typ).Elem()
		for i, idx := range exported {
			if err := assign(rec.Field(idx), fields[i]); err != nil {
				return nil, fmt.Errorf("field %s: %w", typ.Field(idx).Name, err)
			}
		}
		return rec.Interface(), nil
	}
}

// assign stores v into dst, converting between compatible kinds such as
// int and int64. A []any fills a slice or array field element by element.
func assign(dst reflect.Value, v any) error {
	if v == nil {
		return nil
	}
	src := reflect.ValueOf(v)
	items, isList := v.([]any)
	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
	case isList && (dst.Kind() == reflect.Slice || dst.Kind() == reflect.Array):
		return assignList(dst, items)
	case src.Type().ConvertibleTo(dst.Type()) && src.Kind() != reflect.String && dst.Kind() != reflect.String:
		dst.Set(src.Convert(dst.Type()))
	default:
		return fmt.Errorf("%w: cannot use %T as %s", ErrType, v, dst.Type())
	}
	return nil
}

// assignList fills a slice or fixed-size array from items.
func assignList(dst reflect.Value, items []any) error {
	if dst.Kind() == reflect.Array && dst.Len() != len(items) {
		return fmt.Errorf("%w: %s holds %d values, got %d", ErrArity, dst.Type(), dst.Len(), len(items))
	}
	out := dst
	if dst.Kind() == reflect.Slice {
		out = reflect.MakeSlice(dst.Type(), len(items), len(items))
	}
	for i, item := range items {
		if err := assign(out.Index(i), item); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	if dst.Kind() == reflect.Slice {
		dst.Set(out)
	}
	return nil
}
