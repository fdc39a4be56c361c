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

// InterfacePasswordResetService defines the password reset service interface
type InterfacePasswordResetService interface {
	RequestReset(username string) (*models.PasswordReset, error)
	RedeemReset(token, newPassword string) error
	RevokeReset(token string) error
}

// PasswordResetService issues and redeems one-time password reset tokens
type PasswordResetService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(db *gorm.DB, cfg *config.Config) InterfacePasswordResetService {
	return &PasswordResetService{
		DB:     db,
		Config: cfg,
	}
}

// RequestReset issues a fresh token for the operator and revokes any earlier
// active tokens, atomically. Unknown or deleted usernames get a plain
// not-found error; only login failures are required to stay uniform.
func (s *PasswordResetService) RequestReset(username string) (*models.PasswordReset, error) {
	var operator models.Operator
	err := s.DB.Where("user_name = ? AND is_deleted = ?", username, false).First(&operator).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.NewError(code.ErrOperatorNotFound)
		}
		return nil, err
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return nil, err
	}
	defer uow.Close()

	if _, err := uow.PasswordResets.UpdateFields(
		[]database.Scope{database.Where("operator_id = ? AND used_at IS NULL AND is_revoked = ?", operator.ID, false)},
		map[string]interface{}{"is_revoked": true},
	); err != nil {
		return nil, err
	}

	now := time.Now()
	reset := &models.PasswordReset{
		Token:       utils.NewResetToken(),
		RequestedAt: now,
		ExpiresAt:   now.Add(time.Duration(s.Config.ResetTokenExpiry) * time.Minute),
		OperatorID:  operator.ID,
	}
	if err := uow.PasswordResets.Insert(reset); err != nil {
		return nil, err
	}

	if err := uow.Save(); err != nil {
		return nil, err
	}
	return reset, nil
}

// RedeemReset validates the token and sets the operator's new password hash
// in the same transaction that marks the token used.
func (s *PasswordResetService) RedeemReset(token, newPassword string) error {
	repo := database.NewRepository[models.PasswordReset](s.DB)
	reset, err := repo.FindOne([]database.Scope{database.Where("token = ?", token)})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.NewError(code.ErrResetTokenInvalid)
		}
		return err
	}

	now := time.Now()
	switch {
	case reset.UsedAt != nil:
		return code.NewError(code.ErrResetTokenUsed)
	case reset.IsRevoked:
		return code.NewError(code.ErrResetTokenInvalid)
	case !now.Before(reset.ExpiresAt):
		return code.NewError(code.ErrResetTokenExpired)
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	uow, err := database.NewUnitOfWork(s.DB)
	if err != nil {
		return err
	}
	defer uow.Close()

	if err := uow.Operators.UpdateFieldsByID(reset.OperatorID, map[string]interface{}{
		"password": hashedPassword,
	}); err != nil {
		return err
	}
	if err := uow.PasswordResets.UpdateFieldsByID(reset.ID, map[string]interface{}{
		"used_at": now,
	}); err != nil {
		return err
	}

	return uow.Save()
}

// RevokeReset marks an outstanding token unusable
func (s *PasswordResetService) RevokeReset(token string) error {
	repo := database.NewRepository[models.PasswordReset](s.DB)
	reset, err := repo.FindOne([]database.Scope{database.Where("token = ?", token)})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.NewError(code.ErrResetTokenInvalid)
		}
		return err
	}

	return repo.UpdateFieldsByID(reset.ID, map[string]interface{}{"is_revoked": true})
}
