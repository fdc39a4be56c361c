package services

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// examinerColumns is the import/export/template column layout for examiners
var examinerColumns = []string{"Name", "BirthDate", "Email", "Phone", "IdentityCardNumber"}

// examColumns is the export column layout for exams
var examColumns = []string{"Code", "Name", "Date", "Status", "Profession", "Institution", "ExamType"}

// ExportedFile is a generated binary document ready for download
type ExportedFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ImportResult summarizes a completed spreadsheet import
type ImportResult struct {
	Imported  int      `json:"imported"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// InterfaceExcelService defines the spreadsheet service interface
type InterfaceExcelService interface {
	ExportExams(operatorID uint) (*ExportedFile, error)
	ExportExaminers(operatorID uint) (*ExportedFile, error)
	ExaminerTemplate(operatorID uint) (*ExportedFile, error)
	ImportExaminers(reader io.Reader, fileName string, operatorID uint) (*ImportResult, error)
}

// ExcelService renders and parses xlsx workbooks; every run is recorded as a
// FileHistory row
type ExcelService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewExcelService creates a new spreadsheet service
func NewExcelService(db *gorm.DB, cfg *config.Config) InterfaceExcelService {
	return &ExcelService{
		DB:     db,
		Config: cfg,
	}
}

func (s *ExcelService) record(entry *models.FileHistory) {
	entry.ByteSize = int64(len(entry.Content))
	// History recording must not fail the main operation.
	_ = database.NewRepository[models.FileHistory](s.DB).Insert(entry)
}

// ExportExams renders all non-deleted exams into a workbook
func (s *ExcelService) ExportExams(operatorID uint) (*ExportedFile, error) {
	exams, err := database.NewRepository[models.Exam](s.DB).
		Find(nil, "Profession", "Institution", "ExamType")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Exams"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	writeHeader(f, sheet, examColumns)

	for i, exam := range exams {
		row := i + 2
		values := []interface{}{
			exam.Code,
			exam.Name,
			exam.Date.Format("2006-01-02"),
			string(exam.Status),
			lookupName(exam.Profession),
			lookupName(exam.Institution),
			lookupName(exam.ExamType),
		}
		writeRow(f, sheet, row, values)
	}

	return s.finishExport(f, "exams", models.FileCategoryExam, models.FileActionExport, operatorID)
}

// ExportExaminers renders all non-deleted examiners into a workbook matching
// the import column layout
func (s *ExcelService) ExportExaminers(operatorID uint) (*ExportedFile, error) {
	examiners, err := database.NewRepository[models.Examiner](s.DB).Find(nil)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Examiners"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	writeHeader(f, sheet, examinerColumns)

	for i, examiner := range examiners {
		row := i + 2
		values := []interface{}{
			examiner.Name,
			examiner.BirthDate.Format("2006-01-02"),
			examiner.Email,
			examiner.Phone,
			examiner.IdentityCardNumber,
		}
		writeRow(f, sheet, row, values)
	}

	return s.finishExport(f, "examiners", models.FileCategoryExaminer, models.FileActionExport, operatorID)
}

// ExaminerTemplate produces an empty workbook skeleton with the import
// column layout
func (s *ExcelService) ExaminerTemplate(operatorID uint) (*ExportedFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Examiners"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	writeHeader(f, sheet, examinerColumns)

	return s.finishExport(f, "examiner_template", models.FileCategoryExaminer, models.FileActionTemplate, operatorID)
}

// ImportExaminers parses an uploaded workbook and inserts all rows in one
// unit of work: a single bad row rejects the whole import.
func (s *ExcelService) ImportExaminers(reader io.Reader, fileName string, operatorID uint) (*ImportResult, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	entry := &models.FileHistory{
		FileName:    fileName,
		ContentType: xlsxContentType,
		Content:     content,
		Action:      models.FileActionImport,
		Category:    models.FileCategoryExaminer,
		OperatorID:  operatorID,
	}

	result, importErr := s.importExaminers(bytes.NewReader(content), operatorID)
	entry.IsSuccessful = importErr == nil
	if importErr != nil {
		entry.Notes = importErr.Error()
		if result != nil && len(result.RowErrors) > 0 {
			entry.Notes = strings.Join(result.RowErrors, "; ")
		}
	} else {
		entry.Notes = fmt.Sprintf("imported %d examiners", result.Imported)
	}
	s.record(entry)

	return result, importErr
}

func (s *ExcelService) importExaminers(reader io.Reader, operatorID uint) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, code.NewError(code.ErrFileFormat)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, code.NewError(code.ErrFileFormat)
	}
	if len(rows) == 0 || !headerMatches(rows[0], examinerColumns) {
		return nil, code.NewError(code.ErrFileFormat)
	}

	result := &ImportResult{}
	examiners := make([]*models.Examiner, 0, len(rows)-1)
	seen := map[string]int{}

	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		if len(row) < len(examinerColumns) {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: missing columns", rowNum))
			continue
		}

		birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(row[1]))
		if err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: invalid birth date %q", rowNum, row[1]))
			continue
		}

		examiner := &models.Examiner{
			Name:               strings.TrimSpace(row[0]),
			BirthDate:          birthDate,
			Email:              strings.TrimSpace(row[2]),
			Phone:              strings.TrimSpace(row[3]),
			IdentityCardNumber: strings.TrimSpace(row[4]),
		}
		if examiner.Name == "" || examiner.Email == "" || examiner.Phone == "" || examiner.IdentityCardNumber == "" {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: required field missing", rowNum))
			continue
		}
		if prev, dup := seen[examiner.Email]; dup {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: duplicate email of row %d", rowNum, prev))
			continue
		}
		seen[examiner.Email] = rowNum

		examiners = append(examiners, examiner)
	}

	if len(result.RowErrors) > 0 {
		return result, code.NewError(code.ErrImportFailed)
	}

	examinerRepo := database.NewRepository[models.Examiner](s.DB)
	for _, examiner := range examiners {
		taken, err := examinerRepo.Exists(database.Where(
			"email = ? OR phone = ? OR identity_card_number = ?",
			examiner.Email, examiner.Phone, examiner.IdentityCardNumber))
		if err != nil {
			return nil, err
		}
		if taken {
			result.RowErrors = append(result.RowErrors,
				fmt.Sprintf("examiner %q conflicts with an existing record", examiner.Email))
		}
	}
	if len(result.RowErrors) > 0 {
		return result, code.NewError(code.ErrImportFailed)
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	if err := uow.Examiners.InsertMany(examiners); err != nil {
		return nil, err
	}
	if err := uow.Save(); err != nil {
		return nil, err
	}

	result.Imported = len(examiners)
	return result, nil
}

// finishExport serializes the workbook, records the activity and names the file
func (s *ExcelService) finishExport(f *excelize.File, prefix string, category models.FileCategory, action models.FileAction, operatorID uint) (*ExportedFile, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("%s_%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	exported := &ExportedFile{
		FileName:    fileName,
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
	}

	s.record(&models.FileHistory{
		FileName:     fileName,
		ContentType:  xlsxContentType,
		Content:      exported.Content,
		Action:       action,
		Category:     category,
		IsSuccessful: true,
		OperatorID:   operatorID,
	})

	return exported, nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) {
	writeRowValues(f, sheet, 1, columns)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func writeRowValues(f *excelize.File, sheet string, row int, values []string) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func headerMatches(row, expected []string) bool {
	if len(row) < len(expected) {
		return false
	}
	for i, column := range expected {
		if !strings.EqualFold(strings.TrimSpace(row[i]), column) {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func lookupName(v interface{}) string {
	switch t := v.(type) {
	case *models.Profession:
		if t != nil {
			return t.Name
		}
	case *models.Institution:
		if t != nil {
			return t.Name
		}
	case *models.ExamType:
		if t != nil {
			return t.TypeName
		}
	}
	return ""
}
