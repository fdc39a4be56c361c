package database

import (
	"testing"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
)

func TestUnitOfWorkSavePersists(t *testing.T) {
	db := openTestDB(t)

	uow, err := NewUnitOfWork(db)
	if err != nil {
		t.Fatalf("new unit of work: %v", err)
	}
	defer uow.Close()

	if err := uow.ExamTypes.Insert(&models.ExamType{TypeName: "written"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := uow.Professions.Insert(&models.Profession{KeorID: "0613", Name: "Carpenter"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := uow.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	count, err := NewRepository[models.ExamType](db).Count()
	if err != nil || count != 1 {
		t.Fatalf("expected 1 exam type after save, got %d (err %v)", count, err)
	}
}

func TestUnitOfWorkRollbackDiscards(t *testing.T) {
	db := openTestDB(t)

	uow, err := NewUnitOfWork(db)
	if err != nil {
		t.Fatalf("new unit of work: %v", err)
	}

	if err := uow.ExamTypes.Insert(&models.ExamType{TypeName: "oral"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := uow.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	count, err := NewRepository[models.ExamType](db).Count()
	if err != nil || count != 0 {
		t.Fatalf("expected no rows after rollback, got %d (err %v)", count, err)
	}
}

func TestUnitOfWorkCloseWithoutSaveRollsBack(t *testing.T) {
	db := openTestDB(t)

	uow, err := NewUnitOfWork(db)
	if err != nil {
		t.Fatalf("new unit of work: %v", err)
	}
	if err := uow.ExamTypes.Insert(&models.ExamType{TypeName: "practical"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	uow.Close()

	count, err := NewRepository[models.ExamType](db).Count()
	if err != nil || count != 0 {
		t.Fatalf("expected no rows after close without save, got %d (err %v)", count, err)
	}
}

// A constraint violation on the second staged write must leave the first one
// unpersisted after rollback.
func TestUnitOfWorkConstraintViolationRollsBack(t *testing.T) {
	db := openTestDB(t)

	uow, err := NewUnitOfWork(db)
	if err != nil {
		t.Fatalf("new unit of work: %v", err)
	}
	defer uow.Close()

	if err := uow.ExamTypes.Insert(&models.ExamType{TypeName: "written"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := uow.ExamTypes.Insert(&models.ExamType{TypeName: "written"}); err == nil {
		t.Fatal("duplicate type name must violate the unique constraint")
	}
	if err := uow.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	count, err := NewRepository[models.ExamType](db).Count()
	if err != nil || count != 0 {
		t.Fatalf("expected no rows after rollback, got %d (err %v)", count, err)
	}
}

func TestUnitOfWorkSaveAfterCloseFails(t *testing.T) {
	db := openTestDB(t)

	uow, err := NewUnitOfWork(db)
	if err != nil {
		t.Fatalf("new unit of work: %v", err)
	}
	uow.Close()

	if err := uow.Save(); err == nil {
		t.Fatal("save after close must fail")
	}
}
