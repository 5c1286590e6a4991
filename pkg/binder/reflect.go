package binder

import (
	"fmt"
	"reflect"
	"strconv"
)

// bindValues sets every field of the struct pointed to by v that carries tag
// from lookup. Fields without the tag, tagged "-", or absent from the source
// are left untouched.
func bindValues(v any, tag string, lookup func(name string) (string, bool)) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrTargetNotStruct
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		field := rt.Field(i)
		name := field.Tag.Get(tag)
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		raw, ok := lookup(name)
		if !ok {
			continue
		}
		if err := setField(rv.Field(i), raw); err != nil {
			return fmt.Errorf("%s %q: %w", tag, name, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw string) error {
	if fv.Kind() == reflect.Pointer {
		ptr := reflect.New(fv.Type().Elem())
		if err := setField(ptr.Elem(), raw); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		if raw == "" || raw == "on" {
			fv.SetBool(raw == "on")
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, fv.Kind())
	}
	return nil
}
