// ABOUTME: Tests for client-side form validation
// ABOUTME: Validation failures are ValidationErrors naming the offending field

package listing

import (
	"errors"
	"testing"

	"github.com/igvshop/igv-admin/internal/client"
)

func TestFieldValidators(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		input   string
		wantErr bool
	}{
		{"required ok", Required("name"), "Netflix", false},
		{"required blank", Required("name"), "   ", true},
		{"number ok", NonNegativeNumber("price"), "70000.50", false},
		{"number zero", NonNegativeNumber("price"), "0", false},
		{"number negative", NonNegativeNumber("price"), "-1", true},
		{"number text", NonNegativeNumber("price"), "abc", true},
		{"positive ok", PositiveInt("category_id"), "3", false},
		{"positive zero", PositiveInt("category_id"), "0", true},
		{"non-negative zero", NonNegativeInt("sort_order"), "0", false},
		{"non-negative negative", NonNegativeInt("sort_order"), "-2", true},
		{"json blank", JSONObject("extra_info"), "", false},
		{"json object", JSONObject("extra_info"), `{"slots":4}`, false},
		{"json array", JSONObject("extra_info"), `[1]`, true},
		{"url ok", HTTPURL("image_url"), "https://cdn.example.com/a.png", false},
		{"url relative", HTTPURL("image_url"), "/a.png", true},
		{"url scheme", HTTPURL("image_url"), "ftp://cdn.example.com/a.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if err != nil && !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateProduct(t *testing.T) {
	valid := client.ProductPayload{
		Code:           "NF-1",
		Slug:           "nf-1",
		Name:           "Netflix",
		Price:          70000,
		CategoryID:     1,
		UsernameLogAcc: "u",
		PasswordLogAcc: "p",
		Status:         client.ProductActive,
	}
	if err := ValidateProduct(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		field  string
		mutate func(*client.ProductPayload)
	}{
		{"code", func(p *client.ProductPayload) { p.Code = "" }},
		{"price", func(p *client.ProductPayload) { p.Price = -1 }},
		{"category_id", func(p *client.ProductPayload) { p.CategoryID = 0 }},
		{"status", func(p *client.ProductPayload) { p.Status = "archived" }},
	}
	for _, tt := range tests {
		p := valid
		tt.mutate(&p)
		err := ValidateProduct(p)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != tt.field {
			t.Errorf("expected validation error on %s, got %v", tt.field, err)
		}
	}
}

func TestValidateCategoryAndImage(t *testing.T) {
	if err := ValidateCategory(client.CategoryPayload{Code: "NF", Name: "Netflix"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCategory(client.CategoryPayload{Code: "NF"}); err == nil {
		t.Error("expected missing name to fail")
	}

	img := client.ProductImagePayload{ProductID: 1, ImageURL: "https://cdn.example.com/a.png"}
	if err := ValidateProductImage(img); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	img.ProductID = 0
	if err := ValidateProductImage(img); err == nil {
		t.Error("expected missing product to fail")
	}
}
