package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid input. Loc starts with "body" followed by the JSON path.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// BindJSON decodes and validates the body into out, answering 422 (or 413) on failure.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "body_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}

	RespondUnprocessable(ctx, parseBindError(err, out))
	return false
}

func parseBindError(err error, out interface{}) []FieldError {
	rootType := baseStructType(out)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))

		for _, fe := range validationErrors {
			fields = append(fields, FieldError{
				Loc:  bodyLoc(jsonPathFromValidatorError(rootType, fe)),
				Msg:  validationMessage(fe.Tag(), fe.Param()),
				Type: fe.Tag(),
			})
		}
		return fields
	}

	if errors.Is(err, io.EOF) {
		return []FieldError{{Loc: bodyLoc(nil), Msg: "is required", Type: "missing"}}
	}

	var syntaxError *json.SyntaxError
	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldError{{Loc: bodyLoc(nil), Msg: "invalid JSON", Type: "json_invalid"}}
	}

	var typeError *json.UnmarshalTypeError
	if errors.As(err, &typeError) {
		path := mapStructPathToJSONPath(rootType, strings.Split(strings.TrimSpace(typeError.Field), "."))

		return []FieldError{{
			Loc:  bodyLoc(path),
			Msg:  fmt.Sprintf("must be of type %s", typeError.Type.String()),
			Type: "type",
		}}
	}

	return []FieldError{{Loc: bodyLoc(nil), Msg: err.Error(), Type: "invalid"}}
}

func bodyLoc(path []string) []string {
	return append([]string{"body"}, path...)
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func jsonPathFromValidatorError(rootType reflect.Type, fe validator.FieldError) []string {
	// "<StructName>.<Field>[.<NestedField>...]"
	namespace := fe.StructNamespace()
	if namespace == "" {
		return []string{fe.Field()}
	}

	parts := strings.Split(namespace, ".")
	if rootType != nil && len(parts) > 1 && parts[0] == rootType.Name() {
		parts = parts[1:]
	}

	return mapStructPathToJSONPath(rootType, parts)
}

// mapStructPathToJSONPath converts Go field names to their json tag names,
// walking nested structs. Unknown segments are kept as-is.
func mapStructPathToJSONPath(rootType reflect.Type, parts []string) []string {
	current := rootType
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		name := part
		var next reflect.Type

		for current != nil && current.Kind() == reflect.Pointer {
			current = current.Elem()
		}
		if current != nil && current.Kind() == reflect.Struct {
			if sf, ok := current.FieldByName(part); ok {
				name = jsonName(sf)
				next = sf.Type
			}
		}

		out = append(out, name)
		current = next
	}

	return out
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
