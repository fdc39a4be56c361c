package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
	"github.com/marcisebestyen/ExamManager-sub001/utils"
)

// newTestDB opens a fresh in-memory database migrated with all models plus a
// config suitable for the services under test. The config singleton reads the
// environment, so tests build the struct directly.
func newTestDB(t *testing.T) (*gorm.DB, *config.Config) {
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

	cfg := &config.Config{
		JWTSecretKey:     "test-secret",
		JWTIssuer:        "exam-manager-test",
		JWTAudience:      "exam-manager-test-api",
		JWTExpiry:        1,
		ResetTokenExpiry: 30,
		BackupDir:        t.TempDir(),
	}

	return db, cfg
}

// seedOperator inserts an operator with a real bcrypt hash of password
func seedOperator(t *testing.T, db *gorm.DB, username, password string, role models.OperatorRole) *models.Operator {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	operator := &models.Operator{
		UserName: username,
		Password: hash,
		Name:     "Test " + username,
		Role:     role,
	}
	if err := db.Create(operator).Error; err != nil {
		t.Fatalf("seed operator %s: %v", username, err)
	}
	return operator
}

// seedLookups inserts one profession, institution and exam type for exam fixtures
func seedLookups(t *testing.T, db *gorm.DB) (*models.Profession, *models.Institution, *models.ExamType) {
	t.Helper()

	profession := &models.Profession{KeorID: "0613", Name: "Software Developer"}
	institution := &models.Institution{EducationalID: "OM-001", Name: "Test Technical School"}
	examType := &models.ExamType{TypeName: "written"}
	for _, fixture := range []interface{}{profession, institution, examType} {
		if err := db.Create(fixture).Error; err != nil {
			t.Fatalf("seed lookup: %v", err)
		}
	}
	return profession, institution, examType
}

func seedExaminer(t *testing.T, db *gorm.DB, name, email, phone, idCard string) *models.Examiner {
	t.Helper()

	examiner := &models.Examiner{
		Name:               name,
		Email:              email,
		Phone:              phone,
		IdentityCardNumber: idCard,
	}
	if err := db.Create(examiner).Error; err != nil {
		t.Fatalf("seed examiner %s: %v", name, err)
	}
	return examiner
}
