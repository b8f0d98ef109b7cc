// Package route builds request URLs from a base URL, a path template with
// :name segments, path parameters, and a flat query mapping.
//
// All functions are pure and safe for concurrent use.
package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// segmentPattern matches a named path segment such as ":id".
var segmentPattern = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// MissingParamError reports a path segment without a parameter value.
type MissingParamError struct {
	Name     string
	Template string
}

// Error implements the error interface.
func (e *MissingParamError) Error() string {
	return fmt.Sprintf("route: missing path parameter %q for %s", e.Name, e.Template)
}

// JoinBase concatenates base and path with exactly one "/" between them.
func JoinBase(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Segments returns the parameter names referenced by template, in order.
func Segments(template string) []string {
	matches := segmentPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Interpolate replaces every :name segment in template with the path-escaped
// string form of params[name]. Keys not referenced by the template are ignored.
func Interpolate(template string, params map[string]any) (string, error) {
	var missing error
	out := segmentPattern.ReplaceAllStringFunc(template, func(seg string) string {
		if missing != nil {
			return seg
		}
		name := seg[1:]
		v, ok := params[name]
		if !ok || isNil(v) {
			missing = &MissingParamError{Name: name, Template: template}
			return seg
		}
		s, err := Stringify(v)
		if err != nil {
			missing = fmt.Errorf("route: path parameter %q: %w", name, err)
			return seg
		}
		return url.PathEscape(s)
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}

// EncodeQuery encodes a flat mapping as a query string. Slice values become
// repeated keys, nil values are dropped, and keys are sorted. The result has
// no leading "?" and is empty when nothing remains.
func EncodeQuery(query map[string]any) (string, error) {
	values := url.Values{}
	for key, v := range query {
		if isNil(v) {
			continue
		}
		rv := reflect.ValueOf(v)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				elem := rv.Index(i).Interface()
				if isNil(elem) {
					continue
				}
				s, err := Stringify(elem)
				if err != nil {
					return "", fmt.Errorf("route: query %q: %w", key, err)
				}
				values.Add(key, s)
			}
			continue
		}
		s, err := Stringify(v)
		if err != nil {
			return "", fmt.Errorf("route: query %q: %w", key, err)
		}
		values.Add(key, s)
	}
	return values.Encode(), nil
}

// Build joins base and the interpolated template, then appends the encoded query.
func Build(base, template string, params, query map[string]any) (string, error) {
	path, err := Interpolate(template, params)
	if err != nil {
		return "", err
	}
	u := JoinBase(base, path)
	qs, err := EncodeQuery(query)
	if err != nil {
		return "", err
	}
	if qs == "" {
		return u, nil
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + qs, nil
}

// Flatten converts a parsed params/query/headers value into a flat mapping
// keyed by json field names. Maps with string keys are copied. Structs go
// through encoding/json, so embedded structs are inlined and values such as
// time.Time arrive in their wire form.
func Flatten(v any) (map[string]any, error) {
	if isNil(v) {
		return nil, nil
	}
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	case url.Values:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case rv.Kind() == reflect.Struct:
		return flattenStruct(v)
	}
	return nil, fmt.Errorf("route: cannot flatten %T into named values", v)
}

// flattenStruct encodes v and reads it back as an object. Numbers are kept
// as json.Number to preserve their exact text.
func flattenStruct(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("route: flatten %T: %w", v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("route: flatten %T: %w", v, err)
	}
	return out, nil
}

// Stringify renders a scalar the way it should appear on the wire.
func Stringify(v any) (string, error) {
	if isNil(v) {
		return "", nil
	}
	v = indirect(v)
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	s, err := cast.ToStringE(v)
	if err == nil {
		return s, nil
	}

	// Named scalar types such as `type Status string`.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return cast.ToStringE(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cast.ToStringE(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cast.ToStringE(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return cast.ToStringE(rv.Float())
	}
	return "", err
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func indirect(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Interface()
}
