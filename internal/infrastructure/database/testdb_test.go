package database

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
)

// openTestDB opens a fresh in-memory database migrated with all models. The
// shared cache keeps the database alive across pooled connections.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Operator{},
		&models.ExamType{},
		&models.Profession{},
		&models.Institution{},
		&models.Examiner{},
		&models.Exam{},
		&models.ExamBoard{},
		&models.PasswordReset{},
		&models.BackupHistory{},
		&models.FileHistory{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
