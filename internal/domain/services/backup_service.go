package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
	"github.com/marcisebestyen/ExamManager-sub001/pkg/logger"
)

// InterfaceBackupService defines the backup service interface
type InterfaceBackupService interface {
	CreateBackup(operatorID uint) (*models.BackupHistory, error)
	RestoreBackup(fileName string, operatorID uint) (*models.BackupHistory, error)
	GetAllBackups(page, pageSize int) ([]models.BackupHistory, int64, error)
}

// BackupService dumps and restores the domain tables as workbook files under
// the configured backup directory. Every run, failed or not, leaves a
// BackupHistory row.
type BackupService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBackupService creates a new backup service
func NewBackupService(db *gorm.DB, cfg *config.Config) InterfaceBackupService {
	return &BackupService{
		DB:     db,
		Config: cfg,
	}
}

// backup sheet names, in parent-before-child order for restore
const (
	sheetExamTypes    = "exam_types"
	sheetProfessions  = "professions"
	sheetInstitutions = "institutions"
	sheetExaminers    = "examiners"
	sheetExams        = "exams"
	sheetExamBoards   = "exam_boards"
)

// CreateBackup writes all domain tables, soft-deleted rows included, into a
// new workbook under the backup directory
func (s *BackupService) CreateBackup(operatorID uint) (*models.BackupHistory, error) {
	fileName := fmt.Sprintf("backup_%s.xlsx", time.Now().Format("20060102_150405"))

	entry := &models.BackupHistory{
		BackupType: models.BackupTypeBackup,
		FileName:   fileName,
		OperatorID: operatorID,
	}

	err := s.writeBackup(fileName)
	entry.IsSuccessful = err == nil
	if err != nil {
		entry.ErrorMessage = err.Error()
		logger.Error("backup %s failed: %v", fileName, err)
	}
	if recordErr := database.NewRepository[models.BackupHistory](s.DB).Insert(entry); recordErr != nil {
		return nil, recordErr
	}

	if err != nil {
		return entry, code.NewError(code.ErrBackupFailed)
	}
	return entry, nil
}

func (s *BackupService) writeBackup(fileName string) error {
	if err := os.MkdirAll(s.Config.BackupDir, 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := dumpSheet[models.ExamType](f, sheetExamTypes, s.DB, true); err != nil {
		return err
	}
	if err := dumpSheet[models.Profession](f, sheetProfessions, s.DB, false); err != nil {
		return err
	}
	if err := dumpSheet[models.Institution](f, sheetInstitutions, s.DB, false); err != nil {
		return err
	}
	if err := dumpSheet[models.Examiner](f, sheetExaminers, s.DB, false); err != nil {
		return err
	}
	if err := dumpSheet[models.Exam](f, sheetExams, s.DB, false); err != nil {
		return err
	}
	if err := dumpSheet[models.ExamBoard](f, sheetExamBoards, s.DB, false); err != nil {
		return err
	}

	return f.SaveAs(filepath.Join(s.Config.BackupDir, fileName))
}

// RestoreBackup replaces all domain tables with the contents of a previously
// created backup workbook, in one transaction
func (s *BackupService) RestoreBackup(fileName string, operatorID uint) (*models.BackupHistory, error) {
	entry := &models.BackupHistory{
		BackupType: models.BackupTypeRestore,
		FileName:   fmt.Sprintf("restore_%s_%s", time.Now().Format("20060102_150405"), fileName),
		OperatorID: operatorID,
	}

	err := s.applyRestore(fileName)
	entry.IsSuccessful = err == nil
	if err != nil {
		entry.ErrorMessage = err.Error()
		logger.Error("restore from %s failed: %v", fileName, err)
	}
	if recordErr := database.NewRepository[models.BackupHistory](s.DB).Insert(entry); recordErr != nil {
		return nil, recordErr
	}

	if err != nil {
		var coded *code.Coded
		if errors.As(err, &coded) {
			return entry, err
		}
		return entry, code.NewError(code.ErrRestoreFailed)
	}
	return entry, nil
}

func (s *BackupService) applyRestore(fileName string) error {
	// Reject path traversal out of the backup directory.
	if fileName != filepath.Base(fileName) || !strings.HasSuffix(fileName, ".xlsx") {
		return code.NewError(code.ErrBackupNotFound)
	}

	path := filepath.Join(s.Config.BackupDir, fileName)
	if _, err := os.Stat(path); err != nil {
		return code.NewError(code.ErrBackupNotFound)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return code.NewError(code.ErrFileFormat)
	}
	defer f.Close()

	examTypes, err := loadSheet[models.ExamType](f, sheetExamTypes)
	if err != nil {
		return err
	}
	professions, err := loadSheet[models.Profession](f, sheetProfessions)
	if err != nil {
		return err
	}
	institutions, err := loadSheet[models.Institution](f, sheetInstitutions)
	if err != nil {
		return err
	}
	examiners, err := loadSheet[models.Examiner](f, sheetExaminers)
	if err != nil {
		return err
	}
	exams, err := loadSheet[models.Exam](f, sheetExams)
	if err != nil {
		return err
	}
	boards, err := loadSheet[models.ExamBoard](f, sheetExamBoards)
	if err != nil {
		return err
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return err
	}
	defer uow.Close()

	all := []database.Scope{database.Where("1 = 1")}
	// Children before parents.
	if _, err := uow.ExamBoards.DeleteWhere(all...); err != nil {
		return err
	}
	if _, err := uow.Exams.DeleteWhere(all...); err != nil {
		return err
	}
	if _, err := uow.Examiners.DeleteWhere(all...); err != nil {
		return err
	}
	if _, err := uow.ExamTypes.DeleteWhere(all...); err != nil {
		return err
	}
	if _, err := uow.Professions.DeleteWhere(all...); err != nil {
		return err
	}
	if _, err := uow.Institutions.DeleteWhere(all...); err != nil {
		return err
	}

	if err := uow.ExamTypes.InsertMany(examTypes); err != nil {
		return err
	}
	if err := uow.Professions.InsertMany(professions); err != nil {
		return err
	}
	if err := uow.Institutions.InsertMany(institutions); err != nil {
		return err
	}
	if err := uow.Examiners.InsertMany(examiners); err != nil {
		return err
	}
	if err := uow.Exams.InsertMany(exams); err != nil {
		return err
	}
	if err := uow.ExamBoards.InsertMany(boards); err != nil {
		return err
	}

	return uow.Save()
}

// GetAllBackups returns a page of backup history, newest first
func (s *BackupService) GetAllBackups(page, pageSize int) ([]models.BackupHistory, int64, error) {
	return database.NewRepository[models.BackupHistory](s.DB).
		FindPaged([]database.Scope{database.OrderBy("created_at DESC")}, page, pageSize)
}

// dumpSheet serializes every row of a table, soft-deleted included, into one
// sheet with a single JSON column per row. The first dumped sheet replaces the
// workbook's default sheet.
func dumpSheet[T any](f *excelize.File, sheet string, db *gorm.DB, first bool) error {
	rows, err := database.NewRepository[T](db).FindWithDeleted(nil)
	if err != nil {
		return err
	}

	if first {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	} else {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	for i, row := range rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(sheet, cell, string(encoded)); err != nil {
			return err
		}
	}
	return nil
}

// loadSheet decodes one JSON document per row from a backup sheet
func loadSheet[T any](f *excelize.File, sheet string) ([]*T, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, code.NewError(code.ErrFileFormat)
	}

	entities := make([]*T, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		entity := new(T)
		if err := json.Unmarshal([]byte(row[0]), entity); err != nil {
			return nil, code.NewError(code.ErrFileFormat)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
