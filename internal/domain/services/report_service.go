package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

const pdfContentType = "application/pdf"

// InterfaceReportService defines the PDF report service interface
type InterfaceReportService interface {
	ExamReport(examID uint, operatorID uint) (*ExportedFile, error)
	ExaminerRoster(operatorID uint) (*ExportedFile, error)
}

// ReportService renders printable PDF documents from exam data
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB, cfg *config.Config) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
	}
}

// ExamReport renders a one-exam summary with its board membership table
func (s *ReportService) ExamReport(examID uint, operatorID uint) (*ExportedFile, error) {
	exam, err := database.NewRepository[models.Exam](s.DB).
		FindByID(examID, "Profession", "Institution", "ExamType", "Operator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrExamNotFound)
		}
		return nil, err
	}

	boards, err := database.NewRepository[models.ExamBoard](s.DB).Find(
		[]database.Scope{database.Where("exam_id = ?", examID), database.OrderBy("role, examiner_id")},
		"Examiner")
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Exam report %s", exam.Code), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Exam Report - %s", exam.Code))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	writeDetail(pdf, "Name", exam.Name)
	writeDetail(pdf, "Date", exam.Date.Format("2006-01-02"))
	writeDetail(pdf, "Status", string(exam.Status))
	writeDetail(pdf, "Profession", lookupName(exam.Profession))
	writeDetail(pdf, "Institution", lookupName(exam.Institution))
	writeDetail(pdf, "Exam type", lookupName(exam.ExamType))
	if exam.Operator != nil {
		writeDetail(pdf, "Operator", exam.Operator.Name)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Board members")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Role", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Email", "1", 0, "L", true, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, board := range boards {
		name, email := "", ""
		if board.Examiner != nil {
			name, email = board.Examiner.Name, board.Examiner.Email
		}
		pdf.CellFormat(70, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, board.Role, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, email, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	if len(boards) == 0 {
		pdf.CellFormat(180, 7, "No board members assigned", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	return s.finishReport(pdf, fmt.Sprintf("exam_report_%s", exam.Code), models.FileCategoryExam, operatorID)
}

// ExaminerRoster renders the full non-deleted examiner list
func (s *ReportService) ExaminerRoster(operatorID uint) (*ExportedFile, error) {
	examiners, err := database.NewRepository[models.Examiner](s.DB).
		Find([]database.Scope{database.OrderBy("name")})
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Examiner roster", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Examiner Roster")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(60, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Birth date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Email", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Phone", "1", 0, "L", true, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, examiner := range examiners {
		pdf.CellFormat(60, 7, examiner.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, examiner.BirthDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, examiner.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, examiner.Phone, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	return s.finishReport(pdf, "examiner_roster", models.FileCategoryExaminer, operatorID)
}

func (s *ReportService) finishReport(pdf *gofpdf.Fpdf, prefix string, category models.FileCategory, operatorID uint) (*ExportedFile, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, code.NewError(code.ErrReportFailed)
	}

	fileName := fmt.Sprintf("%s_%s_%s.pdf", prefix, time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	exported := &ExportedFile{
		FileName:    fileName,
		ContentType: pdfContentType,
		Content:     buf.Bytes(),
	}

	entry := &models.FileHistory{
		FileName:     fileName,
		ContentType:  pdfContentType,
		Content:      exported.Content,
		ByteSize:     int64(len(exported.Content)),
		Action:       models.FileActionReport,
		Category:     category,
		IsSuccessful: true,
		OperatorID:   operatorID,
	}
	// History recording must not fail the main operation.
	_ = database.NewRepository[models.FileHistory](s.DB).Insert(entry)

	return exported, nil
}

func writeDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 0, "L", false, 0, "")
	pdf.Ln(-1)
}
