package services

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the struct's validate tags and reports the first failing
// field as a *ValidationError.
func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_url":
		return "must be an absolute http(s) URL"
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "numeric":
		return "must contain digits only"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// cleanLine normalizes operator input for single-line fields: NFC, trimmed,
// inner whitespace runs collapsed to one space.
func cleanLine(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// cleanText normalizes multi-line operator input: NFC and trimmed.
func cleanText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// normalizePhone strips every whitespace character.
func normalizePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ParsePrice reads a price written with comma thousands separators, such as
// "10,500,000" or "$ 10,500,000". The result must be a finite, non-negative
// number.
func ParsePrice(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return 0, invalid("price", "is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("price", "%q is not a valid amount", text)
	}
	if v < 0 {
		return 0, invalid("price", "must not be negative")
	}
	return v, nil
}
