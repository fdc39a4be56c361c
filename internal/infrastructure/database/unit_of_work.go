package database

import (
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
)

// UnitOfWork aggregates one repository per entity type over a shared
// transaction, so a request handler can stage changes across several
// repositories and commit them atomically. A constraint violation on any
// staged change leaves nothing persisted.
//
// Lifecycle is one unit of work per request: create, mutate, Save or
// Rollback, Close. Close rolls back anything not saved, so `defer uow.Close()`
// after construction is the expected usage.
type UnitOfWork struct {
	tx       *gorm.DB
	finished bool

	Exams          *Repository[models.Exam]
	ExamBoards     *Repository[models.ExamBoard]
	Examiners      *Repository[models.Examiner]
	ExamTypes      *Repository[models.ExamType]
	Professions    *Repository[models.Profession]
	Institutions   *Repository[models.Institution]
	Operators      *Repository[models.Operator]
	PasswordResets *Repository[models.PasswordReset]
	Backups        *Repository[models.BackupHistory]
	Files          *Repository[models.FileHistory]
}

// NewUnitOfWork opens a transaction and binds all repositories to it.
func NewUnitOfWork(db *gorm.DB) (*UnitOfWork, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &UnitOfWork{
		tx:             tx,
		Exams:          newTxRepository[models.Exam](tx),
		ExamBoards:     newTxRepository[models.ExamBoard](tx),
		Examiners:      newTxRepository[models.Examiner](tx),
		ExamTypes:      newTxRepository[models.ExamType](tx),
		Professions:    newTxRepository[models.Profession](tx),
		Institutions:   newTxRepository[models.Institution](tx),
		Operators:      newTxRepository[models.Operator](tx),
		PasswordResets: newTxRepository[models.PasswordReset](tx),
		Backups:        newTxRepository[models.BackupHistory](tx),
		Files:          newTxRepository[models.FileHistory](tx),
	}, nil
}

// Save commits all staged changes atomically.
func (u *UnitOfWork) Save() error {
	if u.finished {
		return gorm.ErrInvalidTransaction
	}
	u.finished = true
	return u.tx.Commit().Error
}

// Rollback discards all staged changes.
func (u *UnitOfWork) Rollback() error {
	if u.finished {
		return nil
	}
	u.finished = true
	return u.tx.Rollback().Error
}

// Close rolls back if the unit of work was neither saved nor rolled back.
// Repositories obtained from the unit of work are invalid afterwards.
func (u *UnitOfWork) Close() {
	if !u.finished {
		_ = u.Rollback()
	}
}
