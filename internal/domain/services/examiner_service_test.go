package services

import (
	"testing"
	"time"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

func TestCreateExaminerUniqueFields(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExaminerService(db, cfg)
	seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")

	cases := []struct {
		name     string
		examiner models.Examiner
		field    string
	}{
		{"email", models.Examiner{Name: "X", Email: "anna@example.com", Phone: "+36209999991", IdentityCardNumber: "ZZ0001"}, "email"},
		{"phone", models.Examiner{Name: "X", Email: "x1@example.com", Phone: "+36201111111", IdentityCardNumber: "ZZ0002"}, "phone"},
		{"identity card", models.Examiner{Name: "X", Email: "x2@example.com", Phone: "+36209999993", IdentityCardNumber: "AB1234"}, "identity_card_number"},
	}
	for _, tc := range cases {
		err := service.CreateExaminer(&tc.examiner)
		if code.CodeOf(err) != code.ErrExaminerAlreadyExist {
			t.Fatalf("%s: expected examiner-already-exists, got %v", tc.name, err)
		}
		fields := code.FieldsOf(err)
		if len(fields) != 1 || fields[0] != tc.field {
			t.Fatalf("%s: expected field %q named, got %v", tc.name, tc.field, fields)
		}
	}
}

func TestSoftDeleteExaminerCascadesToBoards(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExaminerService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	profession, institution, examType := seedLookups(t, db)
	examiner := seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")

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
	if err := db.Create(&models.ExamBoard{ExamID: exam.ID, ExaminerID: examiner.ID, Role: "chair"}).Error; err != nil {
		t.Fatalf("seed board row: %v", err)
	}

	if err := service.SoftDeleteExaminer(examiner.ID, operator.ID); err != nil {
		t.Fatalf("soft delete examiner: %v", err)
	}

	boardRepo := database.NewRepository[models.ExamBoard](db)
	visible, err := boardRepo.Find([]database.Scope{database.Where("examiner_id = ?", examiner.ID)})
	if err != nil {
		t.Fatalf("load boards: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("board assignment still visible after examiner delete: %d rows", len(visible))
	}

	restored, err := service.RestoreExaminer(examiner.ID)
	if err != nil {
		t.Fatalf("restore examiner: %v", err)
	}
	if restored.IsDeleted {
		t.Fatal("examiner still flagged deleted after restore")
	}

	visible, err = boardRepo.Find([]database.Scope{database.Where("examiner_id = ?", examiner.ID)})
	if err != nil || len(visible) != 1 {
		t.Fatalf("cascade-deleted board row not restored: %d rows (err %v)", len(visible), err)
	}
}

func TestGetAllExaminersSearch(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExaminerService(db, cfg)
	seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")
	seedExaminer(t, db, "Bela Toth", "bela@example.com", "+36202222222", "CD5678")

	rows, total, err := service.GetAllExaminers(1, 10, "bela")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Name != "Bela Toth" {
		t.Fatalf("expected only Bela Toth, got %d rows (total %d)", len(rows), total)
	}
}
