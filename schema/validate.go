package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so issue paths match the wire format.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateValue runs struct tag validation on structs, pointers to structs and
// slices of those. Other kinds carry no tags and always pass.
func validateValue(v any) Issues {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validateStruct(rv.Interface(), "")
	case reflect.Slice, reflect.Array:
		var issues Issues
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Pointer && !elem.IsNil() {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			issues = append(issues, validateStruct(elem.Interface(), fmt.Sprintf("[%d]", i))...)
		}
		return issues
	default:
		return nil
	}
}

func validateStruct(s any, prefix string) Issues {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return Issues{{Path: prefix, Code: "invalid", Message: err.Error()}}
	}

	issues := make(Issues, 0, len(validationErrors))
	for _, e := range validationErrors {
		issues = append(issues, Issue{
			Path:    joinPath(prefix, stripRoot(e.Namespace())),
			Code:    e.Tag(),
			Message: formatValidationError(e),
		})
	}
	return issues
}

// stripRoot drops the struct type name validator puts in front of a namespace.
func stripRoot(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	default:
		return prefix + "." + path
	}
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "len":
		return "must have length " + e.Param()
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("must be %s %s", comparison(e.Tag()), e.Param())
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte":
		return "greater than or equal to"
	case "lt":
		return "less than"
	default:
		return "less than or equal to"
	}
}
