package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

func TestErrorSheetRows_PreservesAccumulationOrder(t *testing.T) {
	rowErrors := []domain.RowError{
		{Row: 3, Error: "Row 3: Name is required", Data: domain.ImportRow{Mobile: "9876543210", EmpID: "EMP003", Role: "Telecaller"}},
		{Row: 1, Error: "EMP ID 'EMP001' already exists", Data: domain.ImportRow{Name: "Asha", Mobile: "9876500000", EmpID: "EMP001", Role: "Telecaller", Status: "active"}},
	}

	rows := ErrorSheetRows(rowErrors)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Row Number" || rows[0][4] != "EMP ID" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "3" || rows[2][0] != "1" {
		t.Fatalf("rows must keep accumulation order, got %v then %v", rows[1], rows[2])
	}
	if rows[2][1] != "EMP ID 'EMP001' already exists" || rows[2][2] != "Asha" {
		t.Fatalf("row data not carried over: %v", rows[2])
	}
}

func TestBuildErrorSheet_RoundTrips(t *testing.T) {
	rowErrors := []domain.RowError{
		{Row: 2, Error: "invalid mobile number format", Data: domain.ImportRow{Name: "Ravi", Mobile: "12", EmpID: "EMP002", Role: "Telecaller"}},
	}

	data, err := BuildErrorSheet(rowErrors)
	if err != nil {
		t.Fatalf("BuildErrorSheet: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated sheet is not a readable workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(rows))
	}
	if rows[1][0] != "2" || rows[1][1] != "invalid mobile number format" {
		t.Fatalf("unexpected row content: %v", rows[1])
	}
}

func TestRowErrorsFromRecords_SkipsCreatedRows(t *testing.T) {
	message := "Mobile '8888888888' already exists"
	records := []domain.EmployeeImportRowRecord{
		{RowNumber: 1, Status: domain.EmployeeImportRowStatusCreated, Name: "Asha"},
		{RowNumber: 2, Status: domain.EmployeeImportRowStatusFailed, ErrorMessage: &message, Name: "Ravi", Mobile: "8888888888", EmpID: "EMP002", Role: "Telecaller"},
	}

	rowErrors := RowErrorsFromRecords(records)
	if len(rowErrors) != 1 {
		t.Fatalf("expected only the failed record, got %d", len(rowErrors))
	}
	if rowErrors[0].Row != 2 || rowErrors[0].Error != message {
		t.Fatalf("unexpected row error: %+v", rowErrors[0])
	}
}

func TestBuildImportTemplate(t *testing.T) {
	data, err := BuildImportTemplate()
	if err != nil {
		t.Fatalf("BuildImportTemplate: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("template is not a readable workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and sample row, got %d rows", len(rows))
	}
	want := []string{"Name", "Mobile", "EMP ID", "Role", "Status"}
	for i, col := range want {
		if rows[0][i] != col {
			t.Fatalf("header column %d: want %q, got %q", i, col, rows[0][i])
		}
	}
	if rows[1][3] != "Telecaller" {
		t.Fatalf("sample row should use an importable role, got %q", rows[1][3])
	}
}
