package utils

import "testing"

func TestValidateProjectCode(t *testing.T) {
	tests := []struct {
		code    string
		wantErr bool
	}{
		{"CDF-2026-0431", false},
		{"CDF-2026-431", false},
		{"WDC-2025-10000", false},
		{"cdf-2026-0431", true},
		{"CDF-26-0431", true},
		{"CDF20260431", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateProjectCode(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateProjectCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
	}
}

func TestValidatePaymentReference(t *testing.T) {
	tests := []struct {
		ref     string
		wantErr bool
	}{
		{"PAY-2026-00017", false},
		{"PAY-2026-001", false},
		{"PAY-26-00017", true},
		{"INV-2026-00017", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidatePaymentReference(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePaymentReference(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
		}
	}
}
