package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/2beens/fitlog/internal/apierr"
)

const validationFailedMsg = "Validation failed"

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{validate: v}
}

// Struct returns nil or a ValidationError carrying a field-level detail tree.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierr.Validation(validationFailedMsg, map[string]any{"body": err.Error()})
	}

	details := make(map[string]any)
	for _, fe := range fieldErrs {
		insertDetail(details, namespacePath(fe.Namespace()), fieldMessage(fe))
	}
	return apierr.Validation(validationFailedMsg, details)
}

// DecodeJSON decodes body into dst and validates it. Malformed JSON and type
// mismatches are reported as validation errors too.
func (v *Validator) DecodeJSON(body io.Reader, dst any) error {
	if body == nil {
		return apierr.Validation("Request body is required", nil)
	}

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return decodeError(err)
	}

	return v.Struct(dst)
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		dateErr   *dateError
		sizeErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		return apierr.Validation("Request body too large", map[string]any{"body": fmt.Sprintf("must not exceed %d bytes", sizeErr.Limit)})
	case errors.Is(err, io.EOF):
		return apierr.Validation("Request body is required", nil)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apierr.Validation("Invalid JSON body", nil)
	case errors.As(err, &typeErr):
		details := make(map[string]any)
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		insertDetail(details, strings.Split(field, "."), fmt.Sprintf("must be of type %s", jsonTypeName(typeErr.Type)))
		return apierr.Validation(validationFailedMsg, details)
	case errors.As(err, &dateErr):
		return apierr.Validation(validationFailedMsg, map[string]any{"date": "must be a valid date"})
	default:
		return apierr.Validation("Invalid request body", map[string]any{"body": err.Error()})
	}
}

// namespacePath turns "WorkoutInput.exercises[0].sets[1].reps" into
// [exercises 0 sets 1 reps].
func namespacePath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	var path []string
	for _, p := range parts {
		for {
			open := strings.IndexByte(p, '[')
			if open < 0 {
				if p != "" {
					path = append(path, p)
				}
				break
			}
			if open > 0 {
				path = append(path, p[:open])
			}
			closing := strings.IndexByte(p, ']')
			if closing < open {
				path = append(path, p[open:])
				break
			}
			path = append(path, p[open+1:closing])
			p = p[closing+1:]
		}
	}
	return path
}

func insertDetail(tree map[string]any, path []string, msg string) {
	if len(path) == 0 {
		tree["body"] = msg
		return
	}

	node := tree
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[key] = child
		}
		node = child
	}

	leaf := path[len(path)-1]
	if _, exists := node[leaf]; !exists {
		node[leaf] = msg
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be greater than or equal to " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.Kind().String()
	}
}
