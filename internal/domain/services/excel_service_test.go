package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/database"
)

// fillTemplate opens a generated template and appends data rows to it
func fillTemplate(t *testing.T, template []byte, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(template))
	if err != nil {
		t.Fatalf("open template: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestTemplateImportRoundTrip(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExcelService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)

	template, err := service.ExaminerTemplate(operator.ID)
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	upload := fillTemplate(t, template.Content, [][]interface{}{
		{"Anna Kiss", "1985-03-12", "anna@example.com", "+36201111111", "AB1234"},
		{"Bela Toth", "1990-07-01", "bela@example.com", "+36202222222", "CD5678"},
	})

	result, err := service.ImportExaminers(upload, "examiners.xlsx", operator.ID)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 2 || len(result.RowErrors) != 0 {
		t.Fatalf("expected 2 clean imports, got %+v", result)
	}

	count, err := database.NewRepository[models.Examiner](db).Count()
	if err != nil || count != 2 {
		t.Fatalf("expected 2 examiners persisted, got %d (err %v)", count, err)
	}

	// Template generation and import are both recorded.
	histories, err := database.NewRepository[models.FileHistory](db).
		Find([]database.Scope{database.Where("category = ?", models.FileCategoryExaminer)})
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(histories) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(histories))
	}
}

// One bad row rejects the whole file: nothing is persisted and the failure is
// recorded with row-level diagnostics.
func TestImportExaminersRejectsWholeFileOnBadRow(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExcelService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)

	template, err := service.ExaminerTemplate(operator.ID)
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	upload := fillTemplate(t, template.Content, [][]interface{}{
		{"Anna Kiss", "1985-03-12", "anna@example.com", "+36201111111", "AB1234"},
		{"Bela Toth", "not-a-date", "bela@example.com", "+36202222222", "CD5678"},
	})

	result, err := service.ImportExaminers(upload, "examiners.xlsx", operator.ID)
	if code.CodeOf(err) != code.ErrImportFailed {
		t.Fatalf("expected import-failed, got %v", err)
	}
	if result == nil || len(result.RowErrors) != 1 {
		t.Fatalf("expected one row error, got %+v", result)
	}

	count, err := database.NewRepository[models.Examiner](db).Count()
	if err != nil || count != 0 {
		t.Fatalf("expected no examiners persisted, got %d (err %v)", count, err)
	}

	history, err := database.NewRepository[models.FileHistory](db).
		FindOne([]database.Scope{database.Where("action = ?", models.FileActionImport)})
	if err != nil {
		t.Fatalf("load import history: %v", err)
	}
	if history.IsSuccessful {
		t.Fatal("failed import recorded as successful")
	}
	if history.Notes == "" {
		t.Fatal("failed import recorded without diagnostics")
	}
}

func TestImportExaminersConflictsWithExisting(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExcelService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")

	template, err := service.ExaminerTemplate(operator.ID)
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	upload := fillTemplate(t, template.Content, [][]interface{}{
		{"Anna Kiss", "1985-03-12", "anna@example.com", "+36209999999", "XY9999"},
	})

	if _, err := service.ImportExaminers(upload, "examiners.xlsx", operator.ID); code.CodeOf(err) != code.ErrImportFailed {
		t.Fatalf("expected import-failed on conflict with existing record, got %v", err)
	}
}

func TestImportExaminersWrongHeader(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExcelService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)

	f := excelize.NewFile()
	_ = f.SetCellValue("Sheet1", "A1", "Unrelated")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}

	if _, err := service.ImportExaminers(bytes.NewReader(buf.Bytes()), "bad.xlsx", operator.ID); code.CodeOf(err) != code.ErrFileFormat {
		t.Fatalf("expected file-format error, got %v", err)
	}
}

func TestExportExaminersMatchesImportLayout(t *testing.T) {
	db, cfg := newTestDB(t)
	service := NewExcelService(db, cfg)
	operator := seedOperator(t, db, "admin", "pw", models.RoleAdmin)
	seedExaminer(t, db, "Anna Kiss", "anna@example.com", "+36201111111", "AB1234")

	exported, err := service.ExportExaminers(operator.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(exported.Content))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one data row, got %d rows", len(rows))
	}
	if !headerMatches(rows[0], examinerColumns) {
		t.Fatalf("export header does not match the import layout: %v", rows[0])
	}
	if rows[1][2] != "anna@example.com" {
		t.Fatalf("unexpected data row: %v", rows[1])
	}
}
