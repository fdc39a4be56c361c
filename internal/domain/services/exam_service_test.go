package services

import (
	"testing"
	"time"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

func newExamFixture(t *testing.T) (InterfaceExamService, *models.Exam, []*models.Examiner, *models.Operator) {
	t.Helper()

	db, cfg := newTestDB(t)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	profession, institution, examType := seedLookups(t, db)
	e1 := seedExaminer(t, db, "Examiner One", "one@example.com", "+36201111111", "AB1234")
	e2 := seedExaminer(t, db, "Examiner Two", "two@example.com", "+36202222222", "CD5678")

	exam := &models.Exam{
		Name:          "Spring Final",
		Code:          "EX-2026-001",
		Date:          time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		ProfessionID:  profession.ID,
		InstitutionID: institution.ID,
		ExamTypeID:    examType.ID,
		OperatorID:    operator.ID,
	}

	return NewExamService(db, cfg), exam, []*models.Examiner{e1, e2}, operator
}

func (s *ExamService) boardRows(t *testing.T, examID uint) []models.ExamBoard {
	t.Helper()
	rows, err := database.NewRepository[models.ExamBoard](s.DB).
		FindWithDeleted([]database.Scope{database.Where("exam_id = ?", examID), database.OrderBy("examiner_id")})
	if err != nil {
		t.Fatalf("load board rows: %v", err)
	}
	return rows
}

func TestCreateExamWithBoard(t *testing.T) {
	service, exam, examiners, _ := newExamFixture(t)

	board := []BoardMemberInput{
		{ExaminerID: examiners[0].ID, Role: "chair"},
		{ExaminerID: examiners[1].ID, Role: "member"},
	}
	if err := service.CreateExam(exam, board); err != nil {
		t.Fatalf("create exam: %v", err)
	}
	if exam.Status != models.ExamStatusPlanned {
		t.Fatalf("expected default planned status, got %s", exam.Status)
	}

	rows, err := service.GetBoard(exam.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 board rows, got %d", len(rows))
	}
}

func TestCreateExamDuplicateCode(t *testing.T) {
	service, exam, _, operator := newExamFixture(t)

	if err := service.CreateExam(exam, nil); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	clone := &models.Exam{
		Name:          "Other Exam",
		Code:          exam.Code,
		Date:          exam.Date,
		ProfessionID:  exam.ProfessionID,
		InstitutionID: exam.InstitutionID,
		ExamTypeID:    exam.ExamTypeID,
		OperatorID:    operator.ID,
	}
	err := service.CreateExam(clone, nil)
	if code.CodeOf(err) != code.ErrExamCodeTaken {
		t.Fatalf("expected exam-code-taken, got %v", err)
	}
}

func TestCreateExamUnknownReferences(t *testing.T) {
	service, exam, _, _ := newExamFixture(t)

	exam.ProfessionID = 999
	if err := service.CreateExam(exam, nil); code.CodeOf(err) != code.ErrProfessionNotFound {
		t.Fatalf("expected profession-not-found, got %v", err)
	}
}

func TestCreateExamDuplicateBoardExaminer(t *testing.T) {
	service, exam, examiners, _ := newExamFixture(t)

	board := []BoardMemberInput{
		{ExaminerID: examiners[0].ID, Role: "chair"},
		{ExaminerID: examiners[0].ID, Role: "member"},
	}
	if err := service.CreateExam(exam, board); code.CodeOf(err) != code.ErrBoardMemberExists {
		t.Fatalf("expected board-member-exists, got %v", err)
	}
}

// Deleting an exam cascades the soft delete onto its board rows, and restoring
// the exam only revives rows carrying the cascade stamp. A board row deleted
// on its own beforehand keeps its own stamp and stays deleted.
func TestSoftDeleteCascadeAndSelectiveRestore(t *testing.T) {
	service, exam, examiners, operator := newExamFixture(t)
	impl := service.(*ExamService)

	board := []BoardMemberInput{
		{ExaminerID: examiners[0].ID, Role: "chair"},
		{ExaminerID: examiners[1].ID, Role: "member"},
	}
	if err := service.CreateExam(exam, board); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	// Delete the second examiner's assignment independently, with an older
	// stamp than the cascade will use.
	earlier := time.Now().Add(-time.Hour)
	err := impl.DB.Model(&models.ExamBoard{}).
		Where("exam_id = ? AND examiner_id = ?", exam.ID, examiners[1].ID).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deleted_at":    earlier,
			"deleted_by_id": operator.ID,
		}).Error
	if err != nil {
		t.Fatalf("independent board delete: %v", err)
	}

	if err := service.SoftDeleteExam(exam.ID, operator.ID); err != nil {
		t.Fatalf("soft delete exam: %v", err)
	}
	if _, err := service.GetExamByID(exam.ID); code.CodeOf(err) != code.ErrExamNotFound {
		t.Fatalf("deleted exam still visible: %v", err)
	}
	for _, row := range impl.boardRows(t, exam.ID) {
		if !row.IsDeleted {
			t.Fatalf("board row for examiner %d not deleted after cascade", row.ExaminerID)
		}
	}

	restored, err := service.RestoreExam(exam.ID)
	if err != nil {
		t.Fatalf("restore exam: %v", err)
	}
	if restored.IsDeleted {
		t.Fatal("exam still flagged deleted after restore")
	}

	rows := impl.boardRows(t, exam.ID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 board rows, got %d", len(rows))
	}
	for _, row := range rows {
		switch row.ExaminerID {
		case examiners[0].ID:
			if row.IsDeleted {
				t.Fatal("cascade-deleted board row not restored with the exam")
			}
		case examiners[1].ID:
			if !row.IsDeleted {
				t.Fatal("independently deleted board row revived by exam restore")
			}
		}
	}
}

func TestAddAndRemoveBoardMember(t *testing.T) {
	service, exam, examiners, _ := newExamFixture(t)

	if err := service.CreateExam(exam, nil); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	member := BoardMemberInput{ExaminerID: examiners[0].ID, Role: "chair"}
	if err := service.AddBoardMember(exam.ID, member); err != nil {
		t.Fatalf("add board member: %v", err)
	}
	if err := service.AddBoardMember(exam.ID, member); code.CodeOf(err) != code.ErrBoardMemberExists {
		t.Fatalf("expected board-member-exists on duplicate add, got %v", err)
	}

	if err := service.RemoveBoardMember(exam.ID, examiners[0].ID); err != nil {
		t.Fatalf("remove board member: %v", err)
	}
	if err := service.RemoveBoardMember(exam.ID, examiners[0].ID); code.CodeOf(err) != code.ErrBoardMemberNotFound {
		t.Fatalf("expected board-member-not-found on double remove, got %v", err)
	}
}

// A soft-deleted assignment still occupies the (exam, examiner) primary key,
// so re-adding the pair must revive that row instead of tripping the unique
// constraint with a raw store error.
func TestAddBoardMemberRevivesSoftDeletedRow(t *testing.T) {
	service, exam, examiners, operator := newExamFixture(t)
	impl := service.(*ExamService)

	board := []BoardMemberInput{{ExaminerID: examiners[0].ID, Role: "chair"}}
	if err := service.CreateExam(exam, board); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	now := time.Now()
	err := impl.DB.Model(&models.ExamBoard{}).
		Where("exam_id = ? AND examiner_id = ?", exam.ID, examiners[0].ID).
		Updates(map[string]interface{}{
			"is_deleted":    true,
			"deleted_at":    now,
			"deleted_by_id": operator.ID,
		}).Error
	if err != nil {
		t.Fatalf("soft delete board row: %v", err)
	}

	err = service.AddBoardMember(exam.ID, BoardMemberInput{ExaminerID: examiners[0].ID, Role: "member"})
	if err != nil {
		t.Fatalf("re-adding a soft-deleted pair: %v", err)
	}

	rows := impl.boardRows(t, exam.ID)
	if len(rows) != 1 {
		t.Fatalf("expected the single revived row, got %d", len(rows))
	}
	if rows[0].IsDeleted || rows[0].DeletedAt != nil || rows[0].DeletedByID != nil {
		t.Fatalf("revived row still carries the delete stamp: %+v", rows[0].SoftDelete)
	}
	if rows[0].Role != "member" {
		t.Fatalf("revived row kept the old role: %s", rows[0].Role)
	}
}

func TestGetAllExamsStatusFilter(t *testing.T) {
	service, exam, _, operator := newExamFixture(t)

	if err := service.CreateExam(exam, nil); err != nil {
		t.Fatalf("create exam: %v", err)
	}
	active := &models.Exam{
		Name:          "Active Exam",
		Code:          "EX-2026-002",
		Date:          exam.Date,
		Status:        models.ExamStatusActive,
		ProfessionID:  exam.ProfessionID,
		InstitutionID: exam.InstitutionID,
		ExamTypeID:    exam.ExamTypeID,
		OperatorID:    operator.ID,
	}
	if err := service.CreateExam(active, nil); err != nil {
		t.Fatalf("create active exam: %v", err)
	}

	rows, total, err := service.GetAllExams(1, 10, "", models.ExamStatusActive)
	if err != nil {
		t.Fatalf("filter by status: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Code != "EX-2026-002" {
		t.Fatalf("expected only the active exam, got %d rows (total %d)", len(rows), total)
	}

	if _, _, err := service.GetAllExams(1, 10, "", "bogus"); code.CodeOf(err) != code.ErrValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}
