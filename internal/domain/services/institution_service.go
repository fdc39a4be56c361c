package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

// InterfaceInstitutionService defines the institution service interface
type InterfaceInstitutionService interface {
	GetInstitutionByID(id uint) (*models.Institution, error)
	GetAllInstitutions() ([]models.Institution, error)
	CreateInstitution(institution *models.Institution) error
	UpdateInstitution(id uint, updates map[string]interface{}) (*models.Institution, error)
	DeleteInstitution(id uint) error
}

// InstitutionService provides institution lookup management
type InstitutionService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewInstitutionService creates a new institution service
func NewInstitutionService(db *gorm.DB, cfg *config.Config) InterfaceInstitutionService {
	return &InstitutionService{
		DB:     db,
		Config: cfg,
	}
}

func (s *InstitutionService) repo() *database.Repository[models.Institution] {
	return database.NewRepository[models.Institution](s.DB)
}

// GetInstitutionByID returns an institution by id
func (s *InstitutionService) GetInstitutionByID(id uint) (*models.Institution, error) {
	institution, err := s.repo().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrInstitutionNotFound)
		}
		return nil, err
	}
	return institution, nil
}

// GetAllInstitutions returns all institutions ordered by name
func (s *InstitutionService) GetAllInstitutions() ([]models.Institution, error) {
	return s.repo().Find([]database.Scope{database.OrderBy("name")})
}

// CreateInstitution validates educational id uniqueness and inserts
func (s *InstitutionService) CreateInstitution(institution *models.Institution) error {
	taken, err := s.repo().Exists(database.Where("educational_id = ?", institution.EducationalID))
	if err != nil {
		return err
	}
	if taken {
		return code.NewFieldError(code.ErrInstitutionEduIDTaken, "educational_id")
	}
	return s.repo().Insert(institution)
}

// UpdateInstitution applies a partial update, re-validating a changed
// educational id
func (s *InstitutionService) UpdateInstitution(id uint, updates map[string]interface{}) (*models.Institution, error) {
	institution, err := s.GetInstitutionByID(id)
	if err != nil {
		return nil, err
	}

	if eduID, ok := updates["educational_id"].(string); ok && eduID != institution.EducationalID {
		taken, err := s.repo().Exists(database.Where("educational_id = ? AND id != ?", eduID, institution.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.NewFieldError(code.ErrInstitutionEduIDTaken, "educational_id")
		}
	}

	if err := s.repo().UpdateFieldsByID(id, updates); err != nil {
		return nil, err
	}

	return s.GetInstitutionByID(id)
}

// DeleteInstitution hard-deletes an institution; restricted while exams
// reference it
func (s *InstitutionService) DeleteInstitution(id uint) error {
	inUse, err := database.NewRepository[models.Exam](s.DB).
		Exists(database.Where("institution_id = ?", id))
	if err != nil {
		return err
	}
	if inUse {
		return code.NewError(code.ErrLookupInUse)
	}

	if err := s.repo().DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.NewError(code.ErrInstitutionNotFound)
		}
		return err
	}
	return nil
}
