// ABOUTME: Client-side form validation run before any write reaches the API
// ABOUTME: Field validators plug into huh inputs; payload validators guard CLI writes

package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/igvshop/igv-admin/internal/client"
)

// ValidationError is a required-field or format failure on one form field
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

// Required rejects blank input
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Field: field, Msg: "is required"}
		}
		return nil
	}
}

// NonNegativeNumber accepts decimal input of zero or more
func NonNegativeNumber(field string) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return &ValidationError{Field: field, Msg: "must be a number"}
		}
		if f < 0 {
			return &ValidationError{Field: field, Msg: "must not be negative"}
		}
		return nil
	}
}

// PositiveInt accepts whole numbers greater than zero
func PositiveInt(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return &ValidationError{Field: field, Msg: "must be a whole number"}
		}
		if n <= 0 {
			return &ValidationError{Field: field, Msg: "must be positive"}
		}
		return nil
	}
}

// NonNegativeInt accepts whole numbers of zero or more
func NonNegativeInt(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return &ValidationError{Field: field, Msg: "must be a whole number"}
		}
		if n < 0 {
			return &ValidationError{Field: field, Msg: "must not be negative"}
		}
		return nil
	}
}

// JSONObject accepts blank input or a JSON object
func JSONObject(field string) func(string) error {
	return func(s string) error {
		if _, err := client.ParseExtraInfo(s); err != nil {
			return &ValidationError{Field: field, Msg: "must be a JSON object"}
		}
		return nil
	}
}

// HTTPURL accepts absolute http and https URLs
func HTTPURL(field string) func(string) error {
	return func(s string) error {
		u, err := url.Parse(strings.TrimSpace(s))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &ValidationError{Field: field, Msg: "must be an http(s) URL"}
		}
		return nil
	}
}

// ValidateCategory checks a category before create or update
func ValidateCategory(p client.CategoryPayload) error {
	if err := Required("code")(p.Code); err != nil {
		return err
	}
	return Required("name")(p.Name)
}

// ValidateProduct checks a product before create or update
func ValidateProduct(p client.ProductPayload) error {
	checks := []struct {
		value string
		check func(string) error
	}{
		{p.Code, Required("code")},
		{p.Slug, Required("slug")},
		{p.Name, Required("name")},
		{p.UsernameLogAcc, Required("username_log_acc")},
		{p.PasswordLogAcc, Required("password_log_acc")},
	}
	for _, c := range checks {
		if err := c.check(c.value); err != nil {
			return err
		}
	}
	if p.Price < 0 {
		return &ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if p.CategoryID <= 0 {
		return &ValidationError{Field: "category_id", Msg: "is required"}
	}
	if p.Status != client.ProductActive && p.Status != client.ProductInactive {
		return &ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	return nil
}

// ValidateProductImage checks an image before create
func ValidateProductImage(p client.ProductImagePayload) error {
	if p.ProductID <= 0 {
		return &ValidationError{Field: "product_id", Msg: "is required"}
	}
	if err := HTTPURL("image_url")(p.ImageURL); err != nil {
		return err
	}
	if p.SortOrder < 0 {
		return &ValidationError{Field: "sort_order", Msg: "must not be negative"}
	}
	return nil
}
