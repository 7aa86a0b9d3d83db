package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/shakti-crm/shakti-backend/internal/domain"
	"github.com/shakti-crm/shakti-backend/internal/repository/ports"
	"github.com/shakti-crm/shakti-backend/internal/util"
)

var (
	ErrImportEmptyFile        = errors.New("import file is empty")
	ErrImportTooLarge         = errors.New("import file exceeds maximum size")
	ErrImportMissingColumns   = errors.New("import file missing required columns")
	ErrImportRowLimitExceeded = errors.New("import file exceeds maximum allowed rows")
	ErrImportUnreadable       = errors.New("import file could not be parsed")
)

// mobilePattern is deliberately permissive: optional leading +, then 10-15
// characters of digits, spaces, hyphens or parentheses.
var mobilePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,15}$`)

var importColumns = []string{"name", "mobile", "emp id", "role"}

// summaryMailer delivers the post-import summary to the uploading admin.
// Delivery is best effort; a mail failure never fails the import.
type summaryMailer interface {
	SendImportSummary(ctx context.Context, email string, job *domain.EmployeeImportJob, result *domain.ImportResult) error
}

// EmployeeDraft is a row that passed validation and duplicate checks and is
// ready to be persisted, together with its freshly generated one-time
// credential.
type EmployeeDraft struct {
	Row          int
	Name         string
	Mobile       string
	EmpID        string
	Role         domain.EmployeeRole
	Status       domain.EmployeeStatus
	TempPassword string
	Data         domain.ImportRow
}

// EmployeeCredential is the login material generated for one successfully
// imported employee. It is returned once and never stored in plaintext.
type EmployeeCredential struct {
	Row          int    `json:"row"`
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	EmpID        string `json:"emp_id"`
	TempPassword string `json:"temp_password"`
}

type EmployeeImportServiceConfig struct {
	Bucket       string
	MaxRows      int
	MaxFileBytes int64
}

type EmployeeImportService struct {
	jobs         ports.EmployeeImportRepository
	employees    ports.EmployeeRepository
	storage      ports.ObjectStorage
	mailer       summaryMailer
	bucket       string
	maxRows      int
	maxFileBytes int64
	now          func() time.Time
}

func NewEmployeeImportService(jobs ports.EmployeeImportRepository, employees ports.EmployeeRepository, storage ports.ObjectStorage, mailer summaryMailer, cfg EmployeeImportServiceConfig) *EmployeeImportService {
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = 500
	}
	maxFile := cfg.MaxFileBytes
	if maxFile <= 0 {
		maxFile = 5 * 1024 * 1024
	}

	return &EmployeeImportService{
		jobs:         jobs,
		employees:    employees,
		storage:      storage,
		mailer:       mailer,
		bucket:       cfg.Bucket,
		maxRows:      maxRows,
		maxFileBytes: maxFile,
		now:          time.Now,
	}
}

// Import runs one roster upload end to end: parse, validate and dedupe every
// row in file order, then create the surviving drafts one at a time. Only the
// pre-parse checks are fatal; past that point every failure is captured as a
// per-row error and the batch always runs to completion.
func (s *EmployeeImportService) Import(ctx context.Context, companyID, uploadedBy uuid.UUID, filename string, contents []byte) (_ *domain.EmployeeImportJob, _ *domain.ImportResult, _ []EmployeeCredential, err error) {
	if len(contents) == 0 {
		return nil, nil, nil, ErrImportEmptyFile
	}
	if s.maxFileBytes > 0 && int64(len(contents)) > s.maxFileBytes {
		return nil, nil, nil, ErrImportTooLarge
	}

	batch, err := parseImportRows(contents)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(batch) == 0 {
		return nil, nil, nil, ErrImportEmptyFile
	}
	if s.maxRows > 0 && len(batch) > s.maxRows {
		return nil, nil, nil, ErrImportRowLimitExceeded
	}

	// Roster snapshot is read once per batch. Concurrent imports can race
	// past this check; the unique indexes on employee(emp_id, company_id)
	// and employee(mobile) are the final arbiter.
	roster, err := s.employees.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, nil, err
	}

	jobID := uuid.New()
	fileKey := buildImportObjectName(jobID, filename)
	if s.storage != nil && s.bucket != "" {
		if _, err := s.storage.Upload(ctx, s.bucket, fileKey, importContentType(contents), bytes.NewReader(contents), int64(len(contents))); err != nil {
			return nil, nil, nil, err
		}
	}

	job := &domain.EmployeeImportJob{
		ID:          jobID,
		CompanyID:   companyID,
		UploadedBy:  uploadedBy,
		Status:      domain.EmployeeImportStatusProcessing,
		FileKey:     fileKey,
		TotalRows:   len(batch),
		SubmittedAt: s.now(),
	}
	job, err = s.jobs.CreateJob(ctx, job)
	if err != nil {
		return nil, nil, nil, err
	}

	defer func() {
		if err != nil {
			s.failJob(ctx, job)
		}
	}()

	rowErrors := make([]domain.RowError, 0)
	drafts := make([]EmployeeDraft, 0, len(batch))

	for idx, row := range batch {
		if rowErr := validateRow(row, idx); rowErr != nil {
			rowErrors = append(rowErrors, *rowErr)
			continue
		}

		dupErrors := duplicateErrors(batch, idx, roster)
		if len(dupErrors) > 0 {
			rowErrors = append(rowErrors, dupErrors...)
			continue
		}

		tempPassword, err := util.GenerateTempPassword()
		if err != nil {
			return nil, nil, nil, err
		}

		status := domain.EmployeeStatusActive
		if strings.ToLower(strings.TrimSpace(row.Status)) == string(domain.EmployeeStatusInactive) {
			status = domain.EmployeeStatusInactive
		}

		drafts = append(drafts, EmployeeDraft{
			Row:          idx + 1,
			Name:         strings.TrimSpace(row.Name),
			Mobile:       strings.TrimSpace(row.Mobile),
			EmpID:        strings.TrimSpace(row.EmpID),
			Role:         domain.EmployeeRole(strings.TrimSpace(row.Role)),
			Status:       status,
			TempPassword: tempPassword,
			Data:         row,
		})
	}

	for _, rowErr := range rowErrors {
		if _, err := s.jobs.InsertRow(ctx, errorRowRecord(job.ID, rowErr)); err != nil {
			return nil, nil, nil, err
		}
	}

	// Creates run sequentially and independently: one failing draft never
	// aborts the batch, and already-created employees stay created.
	successful := 0
	credentials := make([]EmployeeCredential, 0, len(drafts))
	for pos, draft := range drafts {
		created, createErr := s.createEmployee(ctx, companyID, draft)
		if createErr != nil {
			rowErr := domain.RowError{
				Row:   pos + 1,
				Error: createErr.Error(),
				Data:  draft.Data,
			}
			rowErrors = append(rowErrors, rowErr)
			if _, err := s.jobs.InsertRow(ctx, errorRowRecord(job.ID, rowErr)); err != nil {
				return nil, nil, nil, err
			}
			continue
		}

		successful++
		credentials = append(credentials, EmployeeCredential{
			Row:          draft.Row,
			Name:         created.Name,
			Mobile:       created.Mobile,
			EmpID:        created.EmpID,
			TempPassword: draft.TempPassword,
		})
		if _, err := s.jobs.InsertRow(ctx, createdRowRecord(job.ID, draft)); err != nil {
			return nil, nil, nil, err
		}
	}

	result := &domain.ImportResult{
		Successful: successful,
		Failed:     len(rowErrors),
		Errors:     rowErrors,
	}

	completed := s.now()
	job.Status = domain.EmployeeImportStatusCompleted
	job.SuccessfulRows = successful
	job.FailedRows = len(rowErrors)
	job.CompletedAt = &completed
	job, err = s.jobs.UpdateJob(ctx, job)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(rowErrors) > 0 && s.storage != nil && s.bucket != "" {
		if sheet, sheetErr := BuildErrorSheet(rowErrors); sheetErr == nil {
			errorKey := fmt.Sprintf("employees/imports/%s/errors.xlsx", job.ID)
			if _, upErr := s.storage.Upload(ctx, s.bucket, errorKey, xlsxContentType, bytes.NewReader(sheet), int64(len(sheet))); upErr != nil {
				log.Printf("import %s: error sheet upload failed: %v", job.ID, upErr)
			}
		}
	}

	s.mailSummary(ctx, roster, uploadedBy, job, result)

	return job, result, credentials, nil
}

func (s *EmployeeImportService) GetJob(ctx context.Context, jobID uuid.UUID) (*domain.EmployeeImportJob, error) {
	job, err := s.jobs.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	rows, err := s.jobs.ListRowsByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	job.Rows = rows
	return job, nil
}

func (s *EmployeeImportService) createEmployee(ctx context.Context, companyID uuid.UUID, draft EmployeeDraft) (*domain.Employee, error) {
	hash, salt, err := util.DerivePassword(draft.TempPassword)
	if err != nil {
		return nil, err
	}
	return s.employees.Create(ctx, &domain.Employee{
		CompanyID:          companyID,
		Name:               draft.Name,
		Mobile:             draft.Mobile,
		EmpID:              draft.EmpID,
		Role:               draft.Role,
		Status:             draft.Status,
		PasswordHash:       hash,
		PasswordSalt:       salt,
		MustChangePassword: true,
	})
}

func (s *EmployeeImportService) mailSummary(ctx context.Context, roster []domain.Employee, uploadedBy uuid.UUID, job *domain.EmployeeImportJob, result *domain.ImportResult) {
	if s.mailer == nil {
		return
	}
	for _, employee := range roster {
		if employee.ID != uploadedBy {
			continue
		}
		if employee.Email == nil || strings.TrimSpace(*employee.Email) == "" {
			return
		}
		if err := s.mailer.SendImportSummary(ctx, *employee.Email, job, result); err != nil {
			log.Printf("import %s: summary mail failed: %v", job.ID, err)
		}
		return
	}
}

func (s *EmployeeImportService) failJob(ctx context.Context, job *domain.EmployeeImportJob) {
	if job == nil || job.ID == uuid.Nil {
		return
	}
	job.Status = domain.EmployeeImportStatusFailed
	now := s.now()
	job.CompletedAt = &now
	if _, err := s.jobs.UpdateJob(ctx, job); err != nil {
		log.Printf("import %s: could not mark job failed: %v", job.ID, err)
	}
}

// validateRow checks a single row in isolation. Rules run in a fixed order
// and the first failure wins, so a row never yields more than one validation
// error. rowIndex is 0-based; reported row numbers are 1-based.
func validateRow(row domain.ImportRow, rowIndex int) *domain.RowError {
	rowError := func(message string) *domain.RowError {
		return &domain.RowError{Row: rowIndex + 1, Error: message, Data: row}
	}

	name := strings.TrimSpace(row.Name)
	mobile := strings.TrimSpace(row.Mobile)
	empID := strings.TrimSpace(row.EmpID)
	role := strings.TrimSpace(row.Role)
	status := strings.TrimSpace(row.Status)

	switch {
	case name == "":
		return rowError(fmt.Sprintf("Row %d: Name is required", rowIndex+1))
	case mobile == "":
		return rowError(fmt.Sprintf("Row %d: Mobile is required", rowIndex+1))
	case empID == "":
		return rowError(fmt.Sprintf("Row %d: EMP ID is required", rowIndex+1))
	case role == "":
		return rowError(fmt.Sprintf("Row %d: Role is required", rowIndex+1))
	}

	if !mobilePattern.MatchString(mobile) {
		return rowError("invalid mobile number format")
	}

	if role != string(domain.EmployeeRoleTelecaller) && role != string(domain.EmployeeRoleTeamIncharge) {
		return rowError("Role must be either 'Telecaller' or 'TeamIncharge'")
	}

	if status != "" {
		lowered := strings.ToLower(status)
		if lowered != string(domain.EmployeeStatusActive) && lowered != string(domain.EmployeeStatusInactive) {
			return rowError("Status must be either 'active' or 'inactive'")
		}
	}

	return nil
}

// duplicateErrors flags row rowIndex when its EMP ID or mobile collides with
// the existing roster or with an earlier row of the same batch. Unlike field
// validation it does not short-circuit: a row colliding on both fields gets
// both errors. Earlier rows are never flagged; the first occurrence wins.
func duplicateErrors(batch []domain.ImportRow, rowIndex int, roster []domain.Employee) []domain.RowError {
	row := batch[rowIndex]
	empID := strings.TrimSpace(row.EmpID)
	mobile := strings.TrimSpace(row.Mobile)

	var found []domain.RowError
	add := func(message string) {
		found = append(found, domain.RowError{Row: rowIndex + 1, Error: message, Data: row})
	}

	empIDTaken := false
	mobileTaken := false
	for _, existing := range roster {
		if !empIDTaken && existing.EmpID == empID {
			add(fmt.Sprintf("EMP ID '%s' already exists", empID))
			empIDTaken = true
		}
		if !mobileTaken && existing.Mobile == mobile {
			add(fmt.Sprintf("Mobile '%s' already exists", mobile))
			mobileTaken = true
		}
	}

	empIDDup := false
	mobileDup := false
	for i := 0; i < rowIndex; i++ {
		earlier := batch[i]
		if !empIDDup && strings.TrimSpace(earlier.EmpID) == empID {
			add(fmt.Sprintf("EMP ID '%s' is duplicate within the upload file", empID))
			empIDDup = true
		}
		if !mobileDup && strings.TrimSpace(earlier.Mobile) == mobile {
			add(fmt.Sprintf("Mobile '%s' is duplicate within the upload file", mobile))
			mobileDup = true
		}
	}

	return found
}

// parseImportRows reads the upload into ordered ImportRows. XLSX files are
// recognised by their zip signature and read from the first sheet only;
// anything else is treated as CSV. The header row is matched by normalised
// column name so column order in the file does not matter.
func parseImportRows(contents []byte) ([]domain.ImportRow, error) {
	var header []string
	var records [][]string
	var err error

	if bytes.HasPrefix(contents, []byte("PK")) {
		header, records, err = parseXLSX(contents)
	} else {
		header, records, err = parseCSV(contents)
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for idx, h := range header {
		columns[normalizeHeader(h)] = idx
	}
	var missing []string
	for _, required := range importColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrImportMissingColumns, strings.Join(missing, ", "))
	}

	// The status column is optional; without it every row's Status stays "".
	statusIdx, hasStatus := columns["status"]

	rows := make([]domain.ImportRow, 0, len(records))
	for _, record := range records {
		if isRecordEmpty(record) {
			continue
		}
		row := domain.ImportRow{
			Name:   cellAt(record, columns["name"]),
			Mobile: cellAt(record, columns["mobile"]),
			EmpID:  cellAt(record, columns["emp id"]),
			Role:   cellAt(record, columns["role"]),
		}
		if hasStatus {
			row.Status = cellAt(record, statusIdx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCSV(contents []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(contents))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrImportEmptyFile
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}

	records := make([][]string, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
		}
		records = append(records, record)
	}
	return header, records, nil
}

func parseXLSX(contents []byte) ([]string, [][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(contents))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, ErrImportEmptyFile
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrImportEmptyFile
	}
	return rows[0], rows[1:], nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func cellAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func isRecordEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func errorRowRecord(jobID uuid.UUID, rowErr domain.RowError) *domain.EmployeeImportRowRecord {
	message := rowErr.Error
	return &domain.EmployeeImportRowRecord{
		JobID:        jobID,
		RowNumber:    rowErr.Row,
		Status:       domain.EmployeeImportRowStatusFailed,
		ErrorMessage: &message,
		Name:         rowErr.Data.Name,
		Mobile:       rowErr.Data.Mobile,
		EmpID:        rowErr.Data.EmpID,
		Role:         rowErr.Data.Role,
		RowStatus:    rowErr.Data.Status,
	}
}

func createdRowRecord(jobID uuid.UUID, draft EmployeeDraft) *domain.EmployeeImportRowRecord {
	return &domain.EmployeeImportRowRecord{
		JobID:     jobID,
		RowNumber: draft.Row,
		Status:    domain.EmployeeImportRowStatusCreated,
		Name:      draft.Name,
		Mobile:    draft.Mobile,
		EmpID:     draft.EmpID,
		Role:      string(draft.Role),
		RowStatus: string(draft.Status),
	}
}

func buildImportObjectName(jobID uuid.UUID, filename string) string {
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "upload.xlsx"
	}
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("employees/imports/%s/%s", jobID.String(), name)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func importContentType(contents []byte) string {
	if bytes.HasPrefix(contents, []byte("PK")) {
		return xlsxContentType
	}
	return "text/csv"
}
