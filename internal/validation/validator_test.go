// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct_MiningParams(t *testing.T) {
	tests := []struct {
		name      string
		req       MiningParamsRequest
		wantField string
	}{
		{"defaults", MiningParamsRequest{MinSupport: 0.1, MinConfidence: 0.5}, ""},
		{"lower bounds", MiningParamsRequest{MinSupport: 0.01, MinConfidence: 0}, ""},
		{"upper bounds", MiningParamsRequest{MinSupport: 1, MinConfidence: 1}, ""},
		{"support below floor", MiningParamsRequest{MinSupport: 0.005, MinConfidence: 0.5}, "min_support"},
		{"support above one", MiningParamsRequest{MinSupport: 1.5, MinConfidence: 0.5}, "min_support"},
		{"negative confidence", MiningParamsRequest{MinSupport: 0.1, MinConfidence: -0.1}, "min_confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if verr != nil {
					t.Errorf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("Field() = %q, want %q", got, tt.wantField)
			}
			if !strings.Contains(verr.Error(), tt.wantField) {
				t.Errorf("Error() = %q, want mention of %q", verr.Error(), tt.wantField)
			}
		})
	}
}

func TestValidateStruct_Date(t *testing.T) {
	tests := []struct {
		fecha string
		valid bool
	}{
		{"2024-03-15", true},
		{"2024-02-30", false},
		{"15-03-2024", false},
		{"", false},
		{"../etc", false},
	}
	for _, tt := range tests {
		t.Run(tt.fecha, func(t *testing.T) {
			verr := ValidateStruct(&DateRequest{Fecha: tt.fecha})
			if (verr == nil) != tt.valid {
				t.Errorf("ValidateStruct(%q) = %v, want valid=%v", tt.fecha, verr, tt.valid)
			}
		})
	}
}

func TestValidateStruct_SalesBatch(t *testing.T) {
	ok := SalesBatchRequest{Fecha: "2024-03-15", Lines: []SaleLineRequest{{IDVenta: 1, IDProducto: 2}}}
	if verr := ValidateStruct(&ok); verr != nil {
		t.Errorf("ValidateStruct(valid batch) = %v", verr)
	}

	empty := SalesBatchRequest{Fecha: "2024-03-15"}
	verr := ValidateStruct(&empty)
	if verr == nil {
		t.Fatal("ValidateStruct(empty batch) = nil, want error")
	}
	if verr.Errors()[0].Tag() != "required" {
		t.Errorf("Tag() = %q, want required", verr.Errors()[0].Tag())
	}

	negative := SalesBatchRequest{Fecha: "2024-03-15", Lines: []SaleLineRequest{{IDVenta: -1, IDProducto: 2}}}
	verr = ValidateStruct(&negative)
	if verr == nil {
		t.Fatal("ValidateStruct(negative id) = nil, want error")
	}
	if got := verr.Errors()[0].Field(); got != "id_venta" {
		t.Errorf("Field() = %q, want id_venta", got)
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&MiningParamsRequest{MinSupport: 2, MinConfidence: 0.5})
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "min_support must be less than or equal to 1" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "min_support" {
		t.Errorf("Details[field] = %v", apiErr.Details["field"])
	}

	multi := ValidateStruct(&MiningParamsRequest{MinSupport: 2, MinConfidence: 3})
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "min_confidence") {
		t.Errorf("Message = %q, want both fields", apiErr.Message)
	}

	date := ValidateStruct(&DateRequest{Fecha: "yesterday"}).ToAPIError()
	if date.Message != "fecha must be a date in YYYY-MM-DD format" {
		t.Errorf("date Message = %q", date.Message)
	}
}
