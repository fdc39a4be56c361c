package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

// InterfaceFileHistoryService defines the file history service interface
type InterfaceFileHistoryService interface {
	GetAllFileHistory(page, pageSize int, category models.FileCategory) ([]models.FileHistory, int64, error)
	GetFileHistoryByID(id uint) (*models.FileHistory, error)
	Record(entry *models.FileHistory) error
}

// FileHistoryService provides access to recorded file activities
type FileHistoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFileHistoryService creates a new file history service
func NewFileHistoryService(db *gorm.DB, cfg *config.Config) InterfaceFileHistoryService {
	return &FileHistoryService{
		DB:     db,
		Config: cfg,
	}
}

func (s *FileHistoryService) repo() *database.Repository[models.FileHistory] {
	return database.NewRepository[models.FileHistory](s.DB)
}

// GetAllFileHistory returns a page of file activities, newest first
func (s *FileHistoryService) GetAllFileHistory(page, pageSize int, category models.FileCategory) ([]models.FileHistory, int64, error) {
	conds := []database.Scope{database.OrderBy("created_at DESC")}
	if category != "" {
		conds = append(conds, database.Where("category = ?", category))
	}
	return s.repo().FindPaged(conds, page, pageSize)
}

// GetFileHistoryByID returns one file activity including its stored bytes
func (s *FileHistoryService) GetFileHistoryByID(id uint) (*models.FileHistory, error) {
	entry, err := s.repo().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrFileNotFound)
		}
		return nil, err
	}
	return entry, nil
}

// Record persists a file activity entry
func (s *FileHistoryService) Record(entry *models.FileHistory) error {
	entry.ByteSize = int64(len(entry.Content))
	return s.repo().Insert(entry)
}
