package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

// InterfaceExamTypeService defines the exam type service interface
type InterfaceExamTypeService interface {
	GetExamTypeByID(id uint) (*models.ExamType, error)
	GetAllExamTypes() ([]models.ExamType, error)
	CreateExamType(examType *models.ExamType) error
	UpdateExamType(id uint, updates map[string]interface{}) (*models.ExamType, error)
	DeleteExamType(id uint) error
}

// ExamTypeService provides exam type lookup management
type ExamTypeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewExamTypeService creates a new exam type service
func NewExamTypeService(db *gorm.DB, cfg *config.Config) InterfaceExamTypeService {
	return &ExamTypeService{
		DB:     db,
		Config: cfg,
	}
}

func (s *ExamTypeService) repo() *database.Repository[models.ExamType] {
	return database.NewRepository[models.ExamType](s.DB)
}

// GetExamTypeByID returns an exam type by id
func (s *ExamTypeService) GetExamTypeByID(id uint) (*models.ExamType, error) {
	examType, err := s.repo().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrExamTypeNotFound)
		}
		return nil, err
	}
	return examType, nil
}

// GetAllExamTypes returns all exam types ordered by name
func (s *ExamTypeService) GetAllExamTypes() ([]models.ExamType, error) {
	return s.repo().Find([]database.Scope{database.OrderBy("type_name")})
}

// CreateExamType validates name uniqueness and inserts
func (s *ExamTypeService) CreateExamType(examType *models.ExamType) error {
	taken, err := s.repo().Exists(database.Where("type_name = ?", examType.TypeName))
	if err != nil {
		return err
	}
	if taken {
		return code.NewFieldError(code.ErrExamTypeNameTaken, "type_name")
	}
	return s.repo().Insert(examType)
}

// UpdateExamType applies a partial update, re-validating a changed name
func (s *ExamTypeService) UpdateExamType(id uint, updates map[string]interface{}) (*models.ExamType, error) {
	examType, err := s.GetExamTypeByID(id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["type_name"].(string); ok && name != examType.TypeName {
		taken, err := s.repo().Exists(database.Where("type_name = ? AND id != ?", name, examType.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.NewFieldError(code.ErrExamTypeNameTaken, "type_name")
		}
	}

	if err := s.repo().UpdateFieldsByID(id, updates); err != nil {
		return nil, err
	}

	return s.GetExamTypeByID(id)
}

// DeleteExamType hard-deletes an exam type; restricted while exams reference it
func (s *ExamTypeService) DeleteExamType(id uint) error {
	inUse, err := database.NewRepository[models.Exam](s.DB).
		Exists(database.Where("exam_type_id = ?", id))
	if err != nil {
		return err
	}
	if inUse {
		return code.NewError(code.ErrLookupInUse)
	}

	if err := s.repo().DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.NewError(code.ErrExamTypeNotFound)
		}
		return err
	}
	return nil
}
