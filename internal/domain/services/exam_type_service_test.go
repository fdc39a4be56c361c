package services

import (
	"testing"
	"time"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
)

func TestCreateExamTypeDuplicateName(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExamTypeService(db, cfg)

	if err := service.CreateExamType(&models.ExamType{TypeName: "written"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := service.CreateExamType(&models.ExamType{TypeName: "written"})
	if code.CodeOf(err) != code.ErrExamTypeNameTaken {
		t.Fatalf("expected name-taken, got %v", err)
	}
}

func TestDeleteExamTypeInUse(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExamTypeService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	profession, institution, examType := seedLookups(t, db)

	exam := &models.Exam{
		Name: "Spring Final", Code: "EX-2026-001",
		Date:          time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		Status:        models.ExamStatusPlanned,
		ProfessionID:  profession.ID,
		InstitutionID: institution.ID,
		ExamTypeID:    examType.ID,
		OperatorID:    operator.ID,
	}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}

	if err := service.DeleteExamType(examType.ID); code.CodeOf(err) != code.ErrLookupInUse {
		t.Fatalf("expected lookup-in-use, got %v", err)
	}

	// Once the referencing exam is gone the delete succeeds.
	if err := db.Delete(exam).Error; err != nil {
		t.Fatalf("remove exam: %v", err)
	}
	if err := service.DeleteExamType(examType.ID); err != nil {
		t.Fatalf("delete unreferenced exam type: %v", err)
	}
	if _, err := service.GetExamTypeByID(examType.ID); code.CodeOf(err) != code.ErrExamTypeNotFound {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
}
