package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
)

func record(t *testing.T, write func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w, body
}

func TestFailErrorHidesUncodedErrorText(t *testing.T) {
	raw := errors.New("UNIQUE constraint failed: exam_boards.exam_id, exam_boards.examiner_id")
	w, body := record(t, func(c *gin.Context) {
		FailError(c, raw)
	})

	if w.Code != code.StatusInternalServerError {
		t.Fatalf("expected 500 for an uncoded error, got %d", w.Code)
	}
	if body.Code != code.ErrDatabase {
		t.Fatalf("expected the generic database code, got %d", body.Code)
	}
	if strings.Contains(w.Body.String(), "constraint") {
		t.Fatalf("store error text leaked into the response: %s", w.Body.String())
	}
}

func TestFailErrorKeepsCodedErrors(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		FailError(c, code.NewFieldError(code.ErrExamCodeTaken, "code"))
	})

	if w.Code != code.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body.Code != code.ErrExamCodeTaken || body.Message != code.GetMessage(code.ErrExamCodeTaken) {
		t.Fatalf("coded error not preserved: %+v", body)
	}
	if len(body.Errors) != 1 || body.Errors[0] != "code" {
		t.Fatalf("field names not preserved: %v", body.Errors)
	}
}

func TestFailErrorUnwrapsCodedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("creating exam"), code.NewError(code.ErrExamNotFound))
	w, body := record(t, func(c *gin.Context) {
		FailError(c, wrapped)
	})

	if w.Code != code.StatusNotFound || body.Code != code.ErrExamNotFound {
		t.Fatalf("wrapped coded error not classified: status %d, body %+v", w.Code, body)
	}
}
