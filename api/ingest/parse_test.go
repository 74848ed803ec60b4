package ingest

import (
	"testing"

	"RecoveryDesk/api/records"
)

func TestParseProtectRow(t *testing.T) {
	r := row(
		"Name", "Asha Verma",
		"Mobile Number", "9876543210",
		"Institution", "HDFC Bank",
		"EMI Amount", "₹4,500",
		"DPD", "95",
	)
	rec := ParseProtectRow(r, "protect_march.xlsx", "", "agent1")

	if rec.Type != records.TypeProtect {
		t.Fatalf("Type = %q, want protect", rec.Type)
	}
	if rec.Name != "Asha Verma" || rec.Mobile != "9876543210" {
		t.Errorf("identity = %q/%q", rec.Name, rec.Mobile)
	}
	if rec.Institution != "HDFC Bank" {
		t.Errorf("Institution = %q", rec.Institution)
	}
	if rec.EMIAmount != 4500 {
		t.Errorf("EMIAmount = %v, want 4500", rec.EMIAmount)
	}
	if rec.DPD != "95" || rec.CurrentDPD != "95" {
		t.Errorf("DPD = %q / CurrentDPD = %q, want 95/95", rec.DPD, rec.CurrentDPD)
	}
	if rec.DPDGroup != records.DPDGroup91To180 {
		t.Errorf("DPDGroup = %q, want %q", rec.DPDGroup, records.DPDGroup91To180)
	}
	if rec.Status != records.DefaultStatus || rec.Stage != records.DefaultStage {
		t.Errorf("defaults = %q/%q", rec.Status, rec.Stage)
	}
	if rec.ID == "" {
		t.Error("ID not assigned")
	}
	if rec.UploadedFrom != "protect_march.xlsx" {
		t.Errorf("UploadedFrom = %q", rec.UploadedFrom)
	}
	if len(rec.Remarks) != 0 {
		t.Errorf("Remarks = %v, want empty", rec.Remarks)
	}
	if len(rec.ActivityLog) != 1 || rec.ActivityLog[0].Action != records.ActionRecordCreated {
		t.Fatalf("ActivityLog = %v, want one Record Created entry", rec.ActivityLog)
	}
	if rec.ActivityLog[0].User != "agent1" {
		t.Errorf("activity user = %q, want agent1", rec.ActivityLog[0].User)
	}
}

func TestParseProtectRowDPDCrossFallback(t *testing.T) {
	// Only "Current DPD" present: both DPD fields take its value.
	r := row("Name", "Asha", "Mobile Number", "9876543210", "Current DPD", "45")
	rec := ParseProtectRow(r, "", "", "")
	if rec.DPD != "45" || rec.CurrentDPD != "45" {
		t.Fatalf("DPD = %q / CurrentDPD = %q, want 45/45", rec.DPD, rec.CurrentDPD)
	}
	if rec.DPDGroup != records.DPDGroup31To60 {
		t.Errorf("DPDGroup = %q, want %q", rec.DPDGroup, records.DPDGroup31To60)
	}
}

func TestParseProtectRowGarbledDPD(t *testing.T) {
	r := row("Name", "Asha", "Mobile Number", "9876543210", "DPD", "n/a")
	rec := ParseProtectRow(r, "", "", "")
	if rec.DPDGroup != records.DPDGroup0To30 {
		t.Errorf("DPDGroup = %q, want %q for unparsable DPD", rec.DPDGroup, records.DPDGroup0To30)
	}
}

func TestParseSettlementRowMirrorsLoanAmount(t *testing.T) {
	r := row(
		"Name", "Ravi",
		"Mobile Number", "9123456780",
		"Creditor Name", "Axis",
		// Indian digit grouping strips to a parseable number.
		"Loan Amount", "1,20,000",
		"EMI Bounced", "Yes",
	)
	rec := ParseSettlementRow(r, "settle.csv", "", "")
	if rec.LoanAmount != 120000 || rec.DueAmt != 120000 {
		t.Fatalf("LoanAmount/DueAmt = %v/%v, want 120000/120000", rec.LoanAmount, rec.DueAmt)
	}
	if rec.LenderName != "Axis" {
		t.Errorf("LenderName = %q", rec.LenderName)
	}
	if !rec.IsEMIBounced {
		t.Error("IsEMIBounced = false, want true")
	}
	if rec.FundsAvailable != records.TriUnset || rec.WhatsappReachout != records.TriUnset {
		t.Errorf("editable tri-states not unset: %q / %q", rec.FundsAvailable, rec.WhatsappReachout)
	}
}

func TestParseNexusRowFormFilled(t *testing.T) {
	t.Run("date value", func(t *testing.T) {
		r := row("Name", "Asha", "User ID", "U-1", "Form Filled Date", "15/3/2023")
		rec := ParseNexusRow(r, "", "", "")
		if rec.FormFilledDate != "2023-03-15" {
			t.Fatalf("FormFilledDate = %q, want 2023-03-15", rec.FormFilledDate)
		}
	})
	t.Run("yes sentinel preserved", func(t *testing.T) {
		r := row("Name", "Asha", "User ID", "U-1", "Form Filled Date", "yes")
		rec := ParseNexusRow(r, "", "", "")
		if rec.FormFilledDate != "Yes" {
			t.Fatalf("FormFilledDate = %q, want literal Yes", rec.FormFilledDate)
		}
	})
	t.Run("true is not the sentinel", func(t *testing.T) {
		r := row("Name", "Asha", "User ID", "U-1", "Form Filled Date", "true")
		rec := ParseNexusRow(r, "", "", "")
		if rec.FormFilledDate != "" {
			t.Fatalf("FormFilledDate = %q, want empty for non-yes text", rec.FormFilledDate)
		}
	})
	t.Run("request raised falls back to purchase date", func(t *testing.T) {
		r := row("Name", "Asha", "User ID", "U-1", "Purchase Date", "2023-03-01", "Request Raised", "yes")
		rec := ParseNexusRow(r, "", "", "")
		if rec.FormFilledDate != "2023-03-01" {
			t.Fatalf("FormFilledDate = %q, want 2023-03-01", rec.FormFilledDate)
		}
	})
	t.Run("transaction datetime projected to day", func(t *testing.T) {
		r := row("Name", "Asha", "User ID", "U-1", "Transaction Date & Time", "15/3/2023 10:30")
		rec := ParseNexusRow(r, "", "", "")
		if rec.NexusPurchaseDate != "2023-03-15" {
			t.Errorf("NexusPurchaseDate = %q, want 2023-03-15", rec.NexusPurchaseDate)
		}
		if rec.TransactionTime != "2023-03-15 10:30:00" {
			t.Errorf("TransactionTime = %q, want 2023-03-15 10:30:00", rec.TransactionTime)
		}
	})
	t.Run("absent stays empty", func(t *testing.T) {
		r := row("Name", "Asha", "User ID", "U-1")
		rec := ParseNexusRow(r, "", "", "")
		if rec.FormFilledDate != "" {
			t.Fatalf("FormFilledDate = %q, want empty", rec.FormFilledDate)
		}
	})
}

func TestParseRowDispatch(t *testing.T) {
	r := row("Name", "Asha", "Mobile Number", "9876543210", "User ID", "U-1")
	if _, ok := ParseRow(records.TypeNexus, r, "", "", "").(*records.NexusRecord); !ok {
		t.Error("nexus dispatch failed")
	}
	if _, ok := ParseRow(records.TypeSettlement, r, "", "", "").(*records.SettlementRecord); !ok {
		t.Error("settlement dispatch failed")
	}
	if _, ok := ParseRow(records.TypeProtect, r, "", "", "").(*records.ProtectRecord); !ok {
		t.Error("protect dispatch failed")
	}
}

func TestNewBaseManualEntryDefaults(t *testing.T) {
	r := row("Name", "Asha", "Mobile Number", "9876543210")
	rec := ParseProtectRow(r, "", "", "")
	if rec.UploadedFrom != "Manual Entry" {
		t.Errorf("UploadedFrom = %q, want Manual Entry", rec.UploadedFrom)
	}
	if rec.ActivityLog[0].User != "system" {
		t.Errorf("activity user = %q, want system", rec.ActivityLog[0].User)
	}
}
