package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
	"github.com/marcisebestyen/ExamManager-sub001/utils"
)

// InterfaceOperatorService defines the operator service interface
type InterfaceOperatorService interface {
	GetOperatorByID(id uint) (*models.Operator, error)
	GetOperatorByUsername(username string) (*models.Operator, error)
	GetAllOperators(page, pageSize int, search string) ([]models.Operator, int64, error)
	GetDeletedOperators() ([]models.Operator, error)
	CreateOperator(operator *models.Operator) error
	UpdateOperator(id uint, updates map[string]interface{}) (*models.Operator, error)
	SoftDeleteOperator(id uint, actorID uint) error
	RestoreOperator(id uint) (*models.Operator, error)
}

// OperatorService provides operator account management
type OperatorService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOperatorService creates a new operator service
func NewOperatorService(db *gorm.DB, cfg *config.Config) InterfaceOperatorService {
	return &OperatorService{
		DB:     db,
		Config: cfg,
	}
}

func (s *OperatorService) repo() *database.Repository[models.Operator] {
	return database.NewRepository[models.Operator](s.DB)
}

// GetOperatorByID returns a non-deleted operator by id
func (s *OperatorService) GetOperatorByID(id uint) (*models.Operator, error) {
	operator, err := s.repo().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrOperatorNotFound)
		}
		return nil, err
	}
	return operator, nil
}

// GetOperatorByUsername returns a non-deleted operator by username
func (s *OperatorService) GetOperatorByUsername(username string) (*models.Operator, error) {
	operator, err := s.repo().FindOne([]database.Scope{database.Where("user_name = ?", username)})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrOperatorNotFound)
		}
		return nil, err
	}
	return operator, nil
}

// GetAllOperators returns a page of operators with an optional search filter
func (s *OperatorService) GetAllOperators(page, pageSize int, search string) ([]models.Operator, int64, error) {
	var conds []database.Scope
	if search != "" {
		pattern := "%" + search + "%"
		conds = append(conds, database.Where("user_name LIKE ? OR name LIKE ? OR email LIKE ?", pattern, pattern, pattern))
	}
	return s.repo().FindPaged(conds, page, pageSize)
}

// GetDeletedOperators returns soft-deleted operators for the restore view
func (s *OperatorService) GetDeletedOperators() ([]models.Operator, error) {
	return s.repo().FindWithDeleted([]database.Scope{database.Where("is_deleted = ?", true)})
}

// CreateOperator validates uniqueness, hashes the password and inserts
func (s *OperatorService) CreateOperator(operator *models.Operator) error {
	if !models.ValidOperatorRole(operator.Role) {
		return code.NewFieldError(code.ErrValidation, "role")
	}

	repo := s.repo()
	taken, err := repo.Exists(database.Where("user_name = ?", operator.UserName))
	if err != nil {
		return err
	}
	if taken {
		return code.NewFieldError(code.ErrOperatorAlreadyExist, "user_name")
	}

	if operator.Email != nil && *operator.Email != "" {
		taken, err = repo.Exists(database.Where("email = ?", *operator.Email))
		if err != nil {
			return err
		}
		if taken {
			return code.NewFieldError(code.ErrOperatorAlreadyExist, "email")
		}
	}

	hashedPassword, err := utils.HashPassword(operator.Password)
	if err != nil {
		return err
	}
	operator.Password = hashedPassword

	return repo.Insert(operator)
}

// UpdateOperator applies a partial update; only supplied fields change and
// changed unique fields are re-validated
func (s *OperatorService) UpdateOperator(id uint, updates map[string]interface{}) (*models.Operator, error) {
	operator, err := s.GetOperatorByID(id)
	if err != nil {
		return nil, err
	}

	repo := s.repo()
	if username, ok := updates["user_name"].(string); ok && username != operator.UserName {
		taken, err := repo.Exists(database.Where("user_name = ? AND id != ?", username, operator.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.NewFieldError(code.ErrOperatorAlreadyExist, "user_name")
		}
	}

	if email, ok := updates["email"].(string); ok && email != "" {
		taken, err := repo.Exists(database.Where("email = ? AND id != ?", email, operator.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, code.NewFieldError(code.ErrOperatorAlreadyExist, "email")
		}
	}

	if role, ok := updates["role"].(string); ok && !models.ValidOperatorRole(models.OperatorRole(role)) {
		return nil, code.NewFieldError(code.ErrValidation, "role")
	}

	if password, ok := updates["password"].(string); ok {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}

	if err := repo.UpdateFieldsByID(id, updates); err != nil {
		return nil, err
	}

	return s.GetOperatorByID(id)
}

// SoftDeleteOperator marks an operator deleted, recording the acting
// operator and timestamp. The last remaining admin cannot be deleted.
func (s *OperatorService) SoftDeleteOperator(id uint, actorID uint) error {
	operator, err := s.GetOperatorByID(id)
	if err != nil {
		return err
	}

	repo := s.repo()
	if operator.Role == models.RoleAdmin {
		admins, err := repo.Count(database.Where("role = ?", models.RoleAdmin))
		if err != nil {
			return err
		}
		if admins <= 1 {
			return code.NewError(code.ErrLastAdmin)
		}
	}

	now := time.Now()
	return repo.UpdateFieldsByID(id, map[string]interface{}{
		"is_deleted":    true,
		"deleted_at":    now,
		"deleted_by_id": actorID,
	})
}

// RestoreOperator clears the soft-delete fields; fails if the operator was
// never deleted
func (s *OperatorService) RestoreOperator(id uint) (*models.Operator, error) {
	repo := s.repo()
	operator, err := repo.FindByIDWithDeleted(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrOperatorNotFound)
		}
		return nil, err
	}
	if !operator.IsDeleted {
		return nil, code.NewError(code.ErrOperatorNotDeleted)
	}

	if err := repo.UpdateFieldsByID(id, map[string]interface{}{
		"is_deleted":    false,
		"deleted_at":    nil,
		"deleted_by_id": nil,
	}); err != nil {
		return nil, err
	}

	return s.GetOperatorByID(id)
}
