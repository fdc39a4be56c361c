package services

import (
	"testing"
	"time"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewBackupService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	profession, institution, examType := seedLookups(t, db)
	examiner := seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")

	exam := &models.Exam{
		Name:          "Spring Final",
		Code:          "EX-2026-001",
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
	board := &models.ExamBoard{ExamID: exam.ID, ExaminerID: examiner.ID, Role: "chair"}
	if err := db.Create(board).Error; err != nil {
		t.Fatalf("seed board row: %v", err)
	}

	entry, err := service.CreateBackup(operator.ID)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if !entry.IsSuccessful || entry.BackupType != models.BackupTypeBackup {
		t.Fatalf("unexpected backup entry: %+v", entry)
	}

	// Mutate everything the backup covers.
	if err := db.Where("1 = 1").Delete(&models.ExamBoard{}).Error; err != nil {
		t.Fatalf("wipe boards: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Exam{}).Error; err != nil {
		t.Fatalf("wipe exams: %v", err)
	}
	if err := db.Create(&models.ExamType{TypeName: "intruder"}).Error; err != nil {
		t.Fatalf("insert extra exam type: %v", err)
	}

	restoreEntry, err := service.RestoreBackup(entry.FileName, operator.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restoreEntry.IsSuccessful || restoreEntry.BackupType != models.BackupTypeRestore {
		t.Fatalf("unexpected restore entry: %+v", restoreEntry)
	}

	restoredExam, err := database.NewRepository[models.Exam](db).
		FindOne([]database.Scope{database.Where("code = ?", "EX-2026-001")})
	if err != nil {
		t.Fatalf("restored exam missing: %v", err)
	}
	if restoredExam.Name != "Spring Final" || restoredExam.ProfessionID != profession.ID {
		t.Fatalf("restored exam corrupted: %+v", restoredExam)
	}

	boards, err := database.NewRepository[models.ExamBoard](db).Find(nil)
	if err != nil || len(boards) != 1 {
		t.Fatalf("expected 1 restored board row, got %d (err %v)", len(boards), err)
	}

	examTypes, err := database.NewRepository[models.ExamType](db).Find(nil)
	if err != nil {
		t.Fatalf("load exam types: %v", err)
	}
	if len(examTypes) != 1 || examTypes[0].TypeName != "written" {
		t.Fatalf("restore did not replace the table contents: %+v", examTypes)
	}

	// Both runs are in the history, newest first.
	history, total, err := service.GetAllBackups(1, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if total != 2 || len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d (total %d)", len(history), total)
	}
}

func TestRestoreBackupUnknownFile(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewBackupService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)

	entry, err := service.RestoreBackup("missing.xlsx", operator.ID)
	if code.CodeOf(err) != code.ErrBackupNotFound {
		t.Fatalf("expected backup-not-found, got %v", err)
	}
	if entry == nil || entry.IsSuccessful {
		t.Fatalf("failed restore must leave an unsuccessful history row: %+v", entry)
	}
}

func TestRestoreBackupRejectsPathTraversal(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewBackupService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)

	for _, name := range []string{"../outside.xlsx", "backup.txt", "a/b.xlsx"} {
		if _, err := service.RestoreBackup(name, operator.ID); code.CodeOf(err) != code.ErrBackupNotFound {
			t.Fatalf("file name %q: expected backup-not-found, got %v", name, err)
		}
	}
}
