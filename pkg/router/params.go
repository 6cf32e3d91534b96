package router

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/routepath"
)

// Bind populates a struct from captured values. The target must be a
// pointer to a struct whose fields carry `capture` tags:
//
//	type PostParams struct {
//	    User string   `capture:"user"`
//	    ID   int      `capture:"id"`
//	    Page *int     `capture:"page"`
//	    Rest []string `capture:"rest"`
//	}
//
// Values are percent-decoded first. A decoded "/" is rejected in every
// field except []string, which splits the value into path segments.
// Pointer fields are left nil when the key was not captured, which is
// how an optional section that did not match shows up.
func Bind(captures matcher.Captures, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("capture")
		if key == "" || key == "-" {
			continue
		}

		value, ok := captures.Lookup(key)
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if fieldValue.Kind() == reflect.Ptr {
			elem := reflect.New(fieldValue.Type().Elem())
			if err := setField(elem.Elem(), value); err != nil {
				return fmt.Errorf("binding capture %q: %w", key, err)
			}
			fieldValue.Set(elem)
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("binding capture %q: %w", key, err)
		}
	}

	return nil
}

// setField sets a field value from a raw captured string.
func setField(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Slice {
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type: %s", field.Type().Elem().Kind())
		}
		// "a/b/c" → ["a", "b", "c"]
		parts, err := routepath.DecodePathSegments(raw)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(parts))
		return nil
	}

	value, err := routepath.DecodeSegment(raw, false)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %s", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
