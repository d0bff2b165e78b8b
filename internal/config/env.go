package config

import (
	"encoding"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// envTag names the variable that overrides a field
const envTag = "env"

// applyEnv overrides every env-tagged field whose variable is set.
// All bad values are reported together, each under its variable name.
func applyEnv(target any) error {
	var errs []error
	walkEnvFields(reflect.ValueOf(target).Elem(), func(name string, field reflect.Value) {
		raw, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := decodeEnv(field, raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	})
	return errors.Join(errs...)
}

// walkEnvFields calls visit for each tagged leaf field, descending into
// plain nested structs (the config sections).
func walkEnvFields(v reflect.Value, visit func(name string, field reflect.Value)) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf, field := t.Field(i), v.Field(i)
		if !sf.IsExported() {
			continue
		}
		if name := sf.Tag.Get(envTag); name != "" {
			visit(name, field)
			continue
		}
		if field.Kind() == reflect.Struct {
			walkEnvFields(field, visit)
		}
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// decodeEnv stores raw into field. Types with their own text form
// (Duration) decode themselves; lists are comma separated.
func decodeEnv(field reflect.Value, raw string) error {
	if field.Addr().Type().Implements(textUnmarshalerType) {
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", raw)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", raw)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported list of %s", field.Type().Elem())
		}
		items := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
