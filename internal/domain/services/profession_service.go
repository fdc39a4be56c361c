package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

// InterfaceProfessionService defines the profession service interface
type InterfaceProfessionService interface {
	GetProfessionByID(id uint) (*models.Profession, error)
	GetAllProfessions() ([]models.Profession, error)
	CreateProfession(profession *models.Profession) error
	UpdateProfession(id uint, updates map[string]interface{}) (*models.Profession, error)
	DeleteProfession(id uint) error
}

// ProfessionService provides profession lookup management
type ProfessionService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewProfessionService creates a new profession service
func NewProfessionService(db *gorm.DB, cfg *config.Config) InterfaceProfessionService {
	return &ProfessionService{
		DB:     db,
		Config: cfg,
	}
}

func (s *ProfessionService) repo() *database.Repository[models.Profession] {
	return database.NewRepository[models.Profession](s.DB)
}

// GetProfessionByID returns a profession by id
func (s *ProfessionService) GetProfessionByID(id uint) (*models.Profession, error) {
	profession, err := s.repo().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrProfessionNotFound)
		}
		return nil, err
	}
	return profession, nil
}

// GetAllProfessions returns all professions ordered by name
func (s *ProfessionService) GetAllProfessions() ([]models.Profession, error) {
	return s.repo().Find([]database.Scope{database.OrderBy("name")})
}

// CreateProfession validates KEOR id uniqueness and inserts
func (s *ProfessionService) CreateProfession(profession *models.Profession) error {
	taken, err := s.repo().Exists(database.Where("keor_id = ?", profession.KeorID))
	if err != nil {
		return err
	}
	if taken {
		return code.NewFieldError(code.ErrProfessionKeorTaken, "keor_id")
	}
	return s.repo().Insert(profession)
}

// UpdateProfession applies a partial update, re-validating a changed KEOR id
func (s *ProfessionService) UpdateProfession(id uint, updates map[string]interface{}) (*models.Profession, error) {
	profession, err := s.GetProfessionByID(id)
	if err != nil {
		return nil, err
	}

	if keorID, ok := updates["keor_id"].(string); ok && keorID != profession.KeorID {
		taken, err := s.repo().Exists(database.Where("keor_id = ? AND id != ?", keorID, profession.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.NewFieldError(code.ErrProfessionKeorTaken, "keor_id")
		}
	}

	if err := s.repo().UpdateFieldsByID(id, updates); err != nil {
		return nil, err
	}

	return s.GetProfessionByID(id)
}

// DeleteProfession hard-deletes a profession; restricted while exams reference it
func (s *ProfessionService) DeleteProfession(id uint) error {
	inUse, err := database.NewRepository[models.Exam](s.DB).
		Exists(database.Where("profession_id = ?", id))
	if err != nil {
		return err
	}
	if inUse {
		return code.NewError(code.ErrLookupInUse)
	}

	if err := s.repo().DeleteByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.NewError(code.ErrProfessionNotFound)
		}
		return err
	}
	return nil
}
