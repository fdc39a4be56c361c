package code

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("creating exam: %w", NewError(ErrExamCodeTaken))
	if CodeOf(err) != ErrExamCodeTaken {
		t.Fatalf("expected %d, got %d", ErrExamCodeTaken, CodeOf(err))
	}
	if CodeOf(errors.New("plain")) != ErrUnknown {
		t.Fatal("plain errors must map to the unknown code")
	}
	if CodeOf(nil) != ErrUnknown {
		t.Fatal("nil must map to the unknown code")
	}
}

func TestFieldsOf(t *testing.T) {
	err := NewFieldError(ErrOperatorAlreadyExist, "user_name", "email")
	fields := FieldsOf(err)
	if len(fields) != 2 || fields[0] != "user_name" || fields[1] != "email" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if FieldsOf(errors.New("plain")) != nil {
		t.Fatal("plain errors carry no fields")
	}
}

func TestMessageAndStatusFallbacks(t *testing.T) {
	if GetMessage(ErrExamNotFound) != "exam does not exist" {
		t.Fatalf("unexpected message: %q", GetMessage(ErrExamNotFound))
	}
	if GetMessage(-1) != "unknown error" {
		t.Fatal("unknown codes must fall back to the generic message")
	}
	if GetStatus(ErrExamNotFound) != StatusNotFound {
		t.Fatalf("unexpected status: %d", GetStatus(ErrExamNotFound))
	}
	if GetStatus(-1) != StatusInternalServerError {
		t.Fatal("unknown codes must fall back to 500")
	}
}
