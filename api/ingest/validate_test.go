package ingest

import (
	"testing"

	"RecoveryDesk/api/records"
)

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name     string
		row      Row
		typ      records.RecordType
		valid    bool
		wantErrs []string
	}{
		{
			"protect ok",
			row("Name", "Asha", "Mobile Number", "9876543210"),
			records.TypeProtect,
			true, nil,
		},
		{
			"protect missing name",
			row("Mobile Number", "9876543210"),
			records.TypeProtect,
			false, []string{"Name is required"},
		},
		{
			"protect short mobile",
			row("Name", "Asha", "Mobile Number", "98765"),
			records.TypeProtect,
			false, []string{"Valid mobile number is required (min 10 digits)"},
		},
		{
			"mobile digits counted through punctuation",
			row("Name", "Asha", "Mobile Number", "+91 98765-43210"),
			records.TypeSettlement,
			true, nil,
		},
		{
			"nexus needs user id not mobile",
			row("Name", "Asha", "User ID", "U-100"),
			records.TypeNexus,
			true, nil,
		},
		{
			"nexus missing user id",
			row("Name", "Asha", "Mobile Number", "9876543210"),
			records.TypeNexus,
			false, []string{"User ID is required"},
		},
		{
			"both missing stacks errors",
			row("Plan", "Gold"),
			records.TypeProtect,
			false, []string{"Name is required", "Valid mobile number is required (min 10 digits)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRow(tt.row, tt.typ)
			if got.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors %v)", got.Valid, tt.valid, got.Errors)
			}
			if len(got.Errors) != len(tt.wantErrs) {
				t.Fatalf("Errors = %v, want %v", got.Errors, tt.wantErrs)
			}
			for i := range tt.wantErrs {
				if got.Errors[i] != tt.wantErrs[i] {
					t.Errorf("Errors[%d] = %q, want %q", i, got.Errors[i], tt.wantErrs[i])
				}
			}
		})
	}
}
