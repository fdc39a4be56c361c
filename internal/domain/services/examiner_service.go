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

// InterfaceExaminerService defines the examiner service interface
type InterfaceExaminerService interface {
	GetExaminerByID(id uint, includes ...string) (*models.Examiner, error)
	GetAllExaminers(page, pageSize int, search string) ([]models.Examiner, int64, error)
	GetDeletedExaminers() ([]models.Examiner, error)
	CreateExaminer(examiner *models.Examiner) error
	UpdateExaminer(id uint, updates map[string]interface{}) (*models.Examiner, error)
	SoftDeleteExaminer(id uint, actorID uint) error
	RestoreExaminer(id uint) (*models.Examiner, error)
}

// ExaminerService provides examiner management
type ExaminerService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewExaminerService creates a new examiner service
func NewExaminerService(db *gorm.DB, cfg *config.Config) InterfaceExaminerService {
	return &ExaminerService{
		DB:     db,
		Config: cfg,
	}
}

func (s *ExaminerService) repo() *database.Repository[models.Examiner] {
	return database.NewRepository[models.Examiner](s.DB)
}

// GetExaminerByID returns a non-deleted examiner by id
func (s *ExaminerService) GetExaminerByID(id uint, includes ...string) (*models.Examiner, error) {
	examiner, err := s.repo().FindByID(id, includes...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrExaminerNotFound)
		}
		return nil, err
	}
	return examiner, nil
}

// GetAllExaminers returns a page of examiners with an optional search filter
func (s *ExaminerService) GetAllExaminers(page, pageSize int, search string) ([]models.Examiner, int64, error) {
	var conds []database.Scope
	if search != "" {
		pattern := "%" + search + "%"
		conds = append(conds, database.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", pattern, pattern, pattern))
	}
	return s.repo().FindPaged(conds, page, pageSize)
}

// GetDeletedExaminers returns soft-deleted examiners for the restore view
func (s *ExaminerService) GetDeletedExaminers() ([]models.Examiner, error) {
	return s.repo().FindWithDeleted([]database.Scope{database.Where("is_deleted = ?", true)})
}

// checkUnique validates the examiner's unique personal fields, excluding the
// row with exceptID from the check on update
func (s *ExaminerService) checkUnique(field, value string, exceptID uint) error {
	if value == "" {
		return nil
	}
	taken, err := s.repo().Exists(database.Where(field+" = ? AND id != ?", value, exceptID))
	if err != nil {
		return err
	}
	if taken {
		return code.NewFieldError(code.ErrExaminerAlreadyExist, field)
	}
	return nil
}

// CreateExaminer validates the unique personal fields and inserts
func (s *ExaminerService) CreateExaminer(examiner *models.Examiner) error {
	if err := s.checkUnique("email", examiner.Email, 0); err != nil {
		return err
	}
	if err := s.checkUnique("phone", examiner.Phone, 0); err != nil {
		return err
	}
	if err := s.checkUnique("identity_card_number", examiner.IdentityCardNumber, 0); err != nil {
		return err
	}
	return s.repo().Insert(examiner)
}

// UpdateExaminer applies a partial update, re-validating changed unique fields
func (s *ExaminerService) UpdateExaminer(id uint, updates map[string]interface{}) (*models.Examiner, error) {
	examiner, err := s.GetExaminerByID(id)
	if err != nil {
		return nil, err
	}

	for _, field := range []string{"email", "phone", "identity_card_number"} {
		if value, ok := updates[field].(string); ok {
			if err := s.checkUnique(field, value, examiner.ID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo().UpdateFieldsByID(id, updates); err != nil {
		return nil, err
	}

	return s.GetExaminerByID(id)
}

// SoftDeleteExaminer marks the examiner deleted and cascades to their board
// assignments in one atomic unit of work
func (s *ExaminerService) SoftDeleteExaminer(id uint, actorID uint) error {
	if _, err := s.GetExaminerByID(id); err != nil {
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

	if err := uow.Examiners.UpdateFieldsByID(id, stamp); err != nil {
		return err
	}
	if _, err := uow.ExamBoards.UpdateFields(
		[]database.Scope{database.Where("examiner_id = ? AND is_deleted = ?", id, false)},
		stamp,
	); err != nil {
		return err
	}

	return uow.Save()
}

// RestoreExaminer clears the soft-delete fields on the examiner and the board
// rows cascade-deleted with them
func (s *ExaminerService) RestoreExaminer(id uint) (*models.Examiner, error) {
	examiner, err := s.repo().FindByIDWithDeleted(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrExaminerNotFound)
		}
		return nil, err
	}
	if !examiner.IsDeleted {
		return nil, code.NewError(code.ErrExaminerNotDeleted)
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

	if err := uow.Examiners.UpdateFieldsByID(id, clear); err != nil {
		return nil, err
	}
	if _, err := uow.ExamBoards.UpdateFields(
		[]database.Scope{database.Where("examiner_id = ? AND is_deleted = ? AND deleted_at = ? AND deleted_by_id = ?",
			id, true, examiner.DeletedAt, examiner.DeletedByID)},
		clear,
	); err != nil {
		return nil, err
	}

	if err := uow.Save(); err != nil {
		return nil, err
	}

	return s.GetExaminerByID(id)
}
