package service

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

// errorSheetHeader is the fixed column set of the downloadable error report.
var errorSheetHeader = []string{"Row Number", "Error", "Name", "Mobile", "EMP ID", "Role", "Status"}

// ErrorSheetRows projects accumulated row errors into tabular form, one row
// per error in accumulation order. Pure projection; validation is never
// re-run here.
func ErrorSheetRows(rowErrors []domain.RowError) [][]string {
	rows := make([][]string, 0, len(rowErrors)+1)
	rows = append(rows, errorSheetHeader)
	for _, rowErr := range rowErrors {
		rows = append(rows, []string{
			strconv.Itoa(rowErr.Row),
			rowErr.Error,
			rowErr.Data.Name,
			rowErr.Data.Mobile,
			rowErr.Data.EmpID,
			rowErr.Data.Role,
			rowErr.Data.Status,
		})
	}
	return rows
}

// BuildErrorSheet renders the error report as an XLSX workbook.
func BuildErrorSheet(rowErrors []domain.RowError) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	for idx, row := range ErrorSheetRows(rowErrors) {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RowErrorsFromRecords rebuilds the error list for a stored job so the error
// sheet stays downloadable after the import call has returned.
func RowErrorsFromRecords(records []domain.EmployeeImportRowRecord) []domain.RowError {
	rowErrors := make([]domain.RowError, 0, len(records))
	for _, record := range records {
		if record.Status != domain.EmployeeImportRowStatusFailed {
			continue
		}
		message := ""
		if record.ErrorMessage != nil {
			message = *record.ErrorMessage
		}
		rowErrors = append(rowErrors, domain.RowError{
			Row:   record.RowNumber,
			Error: message,
			Data: domain.ImportRow{
				Name:   record.Name,
				Mobile: record.Mobile,
				EmpID:  record.EmpID,
				Role:   record.Role,
				Status: record.RowStatus,
			},
		})
	}
	return rowErrors
}

// BuildImportTemplate renders the blank roster template admins download
// before an upload.
func BuildImportTemplate() ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	header := []string{"Name", "Mobile", "EMP ID", "Role", "Status"}
	sample := []string{"Asha Verma", "9876543210", "EMP001", "Telecaller", "active"}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := file.SetSheetRow(sheet, "A2", &sample); err != nil {
		return nil, err
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}
