package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

func TestExamReportProducesPDF(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewReportService(db, cfg)
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

	report, err := service.ExamReport(exam.ID, operator.ID)
	if err != nil {
		t.Fatalf("exam report: %v", err)
	}
	if !bytes.HasPrefix(report.Content, []byte("%PDF")) {
		t.Fatal("report content is not a PDF document")
	}
	if report.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", report.ContentType)
	}

	history, err := database.NewRepository[models.FileHistory](db).
		FindOne([]database.Scope{database.Where("action = ?", models.FileActionReport)})
	if err != nil {
		t.Fatalf("report not recorded in file history: %v", err)
	}
	if !history.IsSuccessful || history.ByteSize != int64(len(report.Content)) {
		t.Fatalf("unexpected history row: %+v", history)
	}
}

func TestExamReportUnknownExam(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewReportService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)

	if _, err := service.ExamReport(999, operator.ID); code.CodeOf(err) != code.ErrExamNotFound {
		t.Fatalf("expected exam-not-found, got %v", err)
	}
}

func TestExaminerRosterProducesPDF(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewReportService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")
	seedExaminer(t, db, "Bela Toth", "bela@example.com", "+36202222222", "CD5678")

	roster, err := service.ExaminerRoster(operator.ID)
	if err != nil {
		t.Fatalf("examiner roster: %v", err)
	}
	if !bytes.HasPrefix(roster.Content, []byte("%PDF")) {
		t.Fatal("roster content is not a PDF document")
	}
}
