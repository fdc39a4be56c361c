package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

// BoardMemberInput is a requested role assignment on an exam board
type BoardMemberInput struct {
	ExaminerID uint   `json:"examiner_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

// InterfaceExamService defines the exam service interface
type InterfaceExamService interface {
	GetExamByID(id uint, includes ...string) (*models.Exam, error)
	GetAllExams(page, pageSize int, search string, status models.ExamStatus) ([]models.Exam, int64, error)
	GetDeletedExams() ([]models.Exam, error)
	CreateExam(exam *models.Exam, board []BoardMemberInput) error
	UpdateExam(id uint, updates map[string]interface{}) (*models.Exam, error)
	SoftDeleteExam(id uint, actorID uint) error
	RestoreExam(id uint) (*models.Exam, error)
	AddBoardMember(examID uint, member BoardMemberInput) error
	RemoveBoardMember(examID, examinerID uint) error
	GetBoard(examID uint) ([]models.ExamBoard, error)
}

// ExamService provides exam management and the board soft-delete cascade
type ExamService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewExamService creates a new exam service
func NewExamService(db *gorm.DB, cfg *config.Config) InterfaceExamService {
	return &ExamService{
		DB:     db,
		Config: cfg,
	}
}

func (s *ExamService) repo() *database.Repository[models.Exam] {
	return database.NewRepository[models.Exam](s.DB)
}

func (s *ExamService) boardRepo() *database.Repository[models.ExamBoard] {
	return database.NewRepository[models.ExamBoard](s.DB)
}

// GetExamByID returns a non-deleted exam by id with the named associations
func (s *ExamService) GetExamByID(id uint, includes ...string) (*models.Exam, error) {
	exam, err := s.repo().FindByID(id, includes...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrExamNotFound)
		}
		return nil, err
	}
	return exam, nil
}

// GetAllExams returns a page of exams filtered by search text and status
func (s *ExamService) GetAllExams(page, pageSize int, search string, status models.ExamStatus) ([]models.Exam, int64, error) {
	var conds []database.Scope
	if search != "" {
		pattern := "%" + search + "%"
		conds = append(conds, database.Where("name LIKE ? OR code LIKE ?", pattern, pattern))
	}
	if status != "" {
		if !models.ValidExamStatus(status) {
			return nil, 0, code.NewFieldError(code.ErrValidation, "status")
		}
		conds = append(conds, database.Where("status = ?", status))
	}
	return s.repo().FindPaged(conds, page, pageSize, "Profession", "Institution", "ExamType")
}

// GetDeletedExams returns soft-deleted exams for the restore view
func (s *ExamService) GetDeletedExams() ([]models.Exam, error) {
	return s.repo().FindWithDeleted([]database.Scope{database.Where("is_deleted = ?", true)})
}

// CreateExam validates the business code and references, then inserts the
// exam together with its initial board rows in one unit of work
func (s *ExamService) CreateExam(exam *models.Exam, board []BoardMemberInput) error {
	if exam.Status == "" {
		exam.Status = models.ExamStatusPlanned
	}
	if !models.ValidExamStatus(exam.Status) {
		return code.NewFieldError(code.ErrValidation, "status")
	}

	taken, err := s.repo().Exists(database.Where("code = ?", exam.Code))
	if err != nil {
		return err
	}
	if taken {
		return code.NewFieldError(code.ErrExamCodeTaken, "code")
	}

	if err := s.validateReferences(exam); err != nil {
		return err
	}

	seen := make(map[uint]bool, len(board))
	for _, member := range board {
		if seen[member.ExaminerID] {
			return code.NewFieldError(code.ErrBoardMemberExists, "examiner_id")
		}
		seen[member.ExaminerID] = true

		exists, err := database.NewRepository[models.Examiner](s.DB).
			Exists(database.Where("id = ?", member.ExaminerID))
		if err != nil {
			return err
		}
		if !exists {
			return code.NewError(code.ErrExaminerNotFound)
		}
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return err
	}
	defer uow.Close()

	if err := uow.Exams.Insert(exam); err != nil {
		return err
	}

	rows := make([]*models.ExamBoard, 0, len(board))
	for _, member := range board {
		rows = append(rows, &models.ExamBoard{
			ExamID:     exam.ID,
			ExaminerID: member.ExaminerID,
			Role:       member.Role,
		})
	}
	if err := uow.ExamBoards.InsertMany(rows); err != nil {
		return err
	}

	return uow.Save()
}

// validateReferences checks the lookup and operator foreign keys
func (s *ExamService) validateReferences(exam *models.Exam) error {
	exists, err := database.NewRepository[models.Profession](s.DB).
		Exists(database.Where("id = ?", exam.ProfessionID))
	if err != nil {
		return err
	}
	if !exists {
		return code.NewError(code.ErrProfessionNotFound)
	}

	exists, err = database.NewRepository[models.Institution](s.DB).
		Exists(database.Where("id = ?", exam.InstitutionID))
	if err != nil {
		return err
	}
	if !exists {
		return code.NewError(code.ErrInstitutionNotFound)
	}

	exists, err = database.NewRepository[models.ExamType](s.DB).
		Exists(database.Where("id = ?", exam.ExamTypeID))
	if err != nil {
		return err
	}
	if !exists {
		return code.NewError(code.ErrExamTypeNotFound)
	}

	exists, err = database.NewRepository[models.Operator](s.DB).
		Exists(database.Where("id = ?", exam.OperatorID))
	if err != nil {
		return err
	}
	if !exists {
		return code.NewError(code.ErrOperatorNotFound)
	}

	return nil
}

// UpdateExam applies a partial update, re-validating a changed code
func (s *ExamService) UpdateExam(id uint, updates map[string]interface{}) (*models.Exam, error) {
	exam, err := s.GetExamByID(id)
	if err != nil {
		return nil, err
	}

	repo := s.repo()
	if examCode, ok := updates["code"].(string); ok && examCode != exam.Code {
		taken, err := repo.Exists(database.Where("code = ? AND id != ?", examCode, exam.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.NewFieldError(code.ErrExamCodeTaken, "code")
		}
	}

	if status, ok := updates["status"].(string); ok && !models.ValidExamStatus(models.ExamStatus(status)) {
		return nil, code.NewFieldError(code.ErrValidation, "status")
	}

	if err := repo.UpdateFieldsByID(id, updates); err != nil {
		return nil, err
	}

	return s.GetExamByID(id)
}

// SoftDeleteExam marks the exam deleted and cascades the soft delete to its
// board rows in one atomic unit of work. The cascade stamps the same actor
// and timestamp on every row so restore can tell cascaded rows apart from
// board rows deleted independently.
func (s *ExamService) SoftDeleteExam(id uint, actorID uint) error {
	if _, err := s.GetExamByID(id); err != nil {
		return err
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return err
	}
	defer uow.Close()

	now := time.Now()
	stamp := map[string]interface{}{
		"is_deleted":    true,
		"deleted_at":    now,
		"deleted_by_id": actorID,
	}

	if err := uow.Exams.UpdateFieldsByID(id, stamp); err != nil {
		return err
	}
	if _, err := uow.ExamBoards.UpdateFields(
		[]database.Scope{database.Where("exam_id = ? AND is_deleted = ?", id, false)},
		stamp,
	); err != nil {
		return err
	}

	return uow.Save()
}

// RestoreExam clears the soft-delete fields on the exam and on the board
// rows that were cascade-deleted with it
func (s *ExamService) RestoreExam(id uint) (*models.Exam, error) {
	exam, err := s.repo().FindByIDWithDeleted(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrExamNotFound)
		}
		return nil, err
	}
	if !exam.IsDeleted {
		return nil, code.NewError(code.ErrExamNotDeleted)
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	clear := map[string]interface{}{
		"is_deleted":    false,
		"deleted_at":    nil,
		"deleted_by_id": nil,
	}

	if err := uow.Exams.UpdateFieldsByID(id, clear); err != nil {
		return nil, err
	}
	if _, err := uow.ExamBoards.UpdateFields(
		[]database.Scope{database.Where("exam_id = ? AND is_deleted = ? AND deleted_at = ? AND deleted_by_id = ?",
			id, true, exam.DeletedAt, exam.DeletedByID)},
		clear,
	); err != nil {
		return nil, err
	}

	if err := uow.Save(); err != nil {
		return nil, err
	}

	return s.GetExamByID(id)
}

// AddBoardMember assigns an examiner to the exam board. At most one
// assignment row exists per (exam, examiner) pair, soft-deleted rows
// included; re-adding a soft-deleted pair revives its row under the new role.
func (s *ExamService) AddBoardMember(examID uint, member BoardMemberInput) error {
	if _, err := s.GetExamByID(examID); err != nil {
		return err
	}

	exists, err := database.NewRepository[models.Examiner](s.DB).
		Exists(database.Where("id = ?", member.ExaminerID))
	if err != nil {
		return err
	}
	if !exists {
		return code.NewError(code.ErrExaminerNotFound)
	}

	board := s.boardRepo()
	pair := database.Where("exam_id = ? AND examiner_id = ?", examID, member.ExaminerID)
	rows, err := board.FindWithDeleted([]database.Scope{pair})
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		if !rows[0].IsDeleted {
			return code.NewFieldError(code.ErrBoardMemberExists, "examiner_id")
		}
		_, err := board.UpdateFields([]database.Scope{pair}, map[string]interface{}{
			"role":          member.Role,
			"is_deleted":    false,
			"deleted_at":    nil,
			"deleted_by_id": nil,
		})
		return err
	}

	return board.Insert(&models.ExamBoard{
		ExamID:     examID,
		ExaminerID: member.ExaminerID,
		Role:       member.Role,
	})
}

// RemoveBoardMember hard-deletes a board assignment row
func (s *ExamService) RemoveBoardMember(examID, examinerID uint) error {
	removed, err := s.boardRepo().DeleteWhere(
		database.Where("exam_id = ? AND examiner_id = ?", examID, examinerID))
	if err != nil {
		return err
	}
	if removed == 0 {
		return code.NewError(code.ErrBoardMemberNotFound)
	}
	return nil
}

// GetBoard returns the non-deleted board rows of an exam
func (s *ExamService) GetBoard(examID uint) ([]models.ExamBoard, error) {
	if _, err := s.GetExamByID(examID); err != nil {
		return nil, err
	}
	return s.boardRepo().Find(
		[]database.Scope{database.Where("exam_id = ?", examID)},
		"Examiner",
	)
}
