package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RequestValidator checks request payloads and renders 422 responses keyed
// by JSON field path.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &RequestValidator{validate: v}
}

// FieldErrors maps a JSON field path to a message key.
type FieldErrors map[string]string

// Check validates req and returns nil when it is valid.
func (rv *RequestValidator) Check(req any) FieldErrors {
	err := rv.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"body": "invalid_value"}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if _, seen := out[path]; !seen {
			out[path] = messageKey(fe)
		}
	}
	return out
}

// BindJSON decodes and validates the body into req. On failure it writes the
// error response and returns false.
func (rv *RequestValidator) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			validationFailed(c, FieldErrors{"body": "body_required"})
		case errors.As(err, &typeErr) && typeErr.Field != "":
			validationFailed(c, FieldErrors{typeErr.Field: "invalid_type"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": i18n.T(i18n.FromContext(c), "bad_request")})
		}
		return false
	}
	if errs := rv.Check(req); errs != nil {
		validationFailed(c, errs)
		return false
	}
	return true
}

func validationFailed(c *gin.Context, errs FieldErrors) {
	lang := i18n.FromContext(c)
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": i18n.T(lang, "validation_error"),
		"errors":  errs,
	})
}

// fieldPath drops the root struct name: "AddToCartRequest.color_id" -> "color_id".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageKey(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field_required"
	case "min", "gt", "gte":
		if fe.Field() == "password" {
			return "password_min"
		}
		return "value_too_small"
	case "max", "lt", "lte":
		return "value_too_large"
	case "url":
		return "invalid_url"
	case "email":
		return "email_invalid"
	case "e164":
		return "phone_number_invalid"
	default:
		return "invalid_value"
	}
}

// parseID reads a positive integer path parameter. On failure it writes the
// 422 response and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		validationFailed(c, FieldErrors{name: "number_id_invalid"})
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery returns 0 when the parameter is missing or malformed.
func parseUintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(c *gin.Context) (int, int) {
	const maxLimit = 100
	page, limit := 1, 10
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
