package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// InterfaceExamController defines the exam controller interface
type InterfaceExamController interface {
	GetExams()
	GetExam()
	GetDeletedExams()
	CreateExam()
	UpdateExam()
	DeleteExam()
	RestoreExam()
	GetBoard()
	AddBoardMember()
	RemoveBoardMember()
}

// ExamController handles exam requests
type ExamController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewExamController creates a new exam controller
func NewExamController(ctx *gin.Context, container *container.ServiceContainer) *ExamController {
	return &ExamController{
		Ctx:       ctx,
		Container: container,
	}
}

// BoardMemberRequest assigns an examiner to the exam board in a role
type BoardMemberRequest struct {
	ExaminerID uint   `json:"examiner_id" binding:"required" example:"3"`
	Role       string `json:"role" binding:"required" example:"chief"`
}

// CreateExamRequest creates an exam together with its initial board
type CreateExamRequest struct {
	Name          string               `json:"name" binding:"required" example:"Spring carpentry final"`
	Code          string               `json:"code" binding:"required" example:"EX-2025-001"`
	Date          string               `json:"date" binding:"required" example:"2025-06-12"`
	Status        string               `json:"status" example:"planned"`
	ProfessionID  uint                 `json:"profession_id" binding:"required" example:"1"`
	InstitutionID uint                 `json:"institution_id" binding:"required" example:"1"`
	ExamTypeID    uint                 `json:"exam_type_id" binding:"required" example:"1"`
	Board         []BoardMemberRequest `json:"board"`
}

// UpdateExamRequest partially updates an exam
type UpdateExamRequest struct {
	Name          string `json:"name" example:"Spring carpentry final"`
	Code          string `json:"code" example:"EX-2025-001"`
	Date          string `json:"date" example:"2025-06-12"`
	Status        string `json:"status" example:"active"`
	ProfessionID  uint   `json:"profession_id" example:"1"`
	InstitutionID uint   `json:"institution_id" example:"1"`
	ExamTypeID    uint   `json:"exam_type_id" example:"1"`
}

// HandleExamFunc returns a gin handler dispatching to the named method
func HandleExamFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewExamController(ctx, container)

		switch method {
		case "getExams":
			controller.GetExams()
		case "getExam":
			controller.GetExam()
		case "getDeletedExams":
			controller.GetDeletedExams()
		case "createExam":
			controller.CreateExam()
		case "updateExam":
			controller.UpdateExam()
		case "deleteExam":
			controller.DeleteExam()
		case "restoreExam":
			controller.RestoreExam()
		case "getBoard":
			controller.GetBoard()
		case "addBoardMember":
			controller.AddBoardMember()
		case "removeBoardMember":
			controller.RemoveBoardMember()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ExamController) service() services.InterfaceExamService {
	return c.Container.GetService("exam").(services.InterfaceExamService)
}

// GetExams lists exams
// @Summary      List exams
// @Description  Returns a page of non-deleted exams
// @Tags         Exam
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        search query string false "Search in name and code"
// @Param        status query string false "Filter by lifecycle status"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /exams [get]
// @Security     BearerAuth
func (c *ExamController) GetExams() {
	page, pageSize := pagination(c.Ctx)
	search := c.Ctx.Query("search")
	status := models.ExamStatus(c.Ctx.Query("status"))

	if status != "" && !models.ValidExamStatus(status) {
		response.ParamError(c.Ctx, "invalid status filter")
		return
	}

	exams, total, err := c.service().GetAllExams(page, pageSize, search, status)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, pagedBody(exams, total, page, pageSize))
}

// GetExam returns one exam with its relations
// @Summary      Get exam
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id} [get]
// @Security     BearerAuth
func (c *ExamController) GetExam() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	exam, err := c.service().GetExamByID(id, "Profession", "Institution", "ExamType", "Operator")
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, exam)
}

// GetDeletedExams lists soft-deleted exams
// @Summary      List deleted exams
// @Tags         Exam
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /exams/deleted [get]
// @Security     BearerAuth
func (c *ExamController) GetDeletedExams() {
	exams, err := c.service().GetDeletedExams()
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, exams)
}

// CreateExam creates an exam with its initial board
// @Summary      Create exam
// @Description  Creates the exam and its board assignments atomically
// @Tags         Exam
// @Accept       json
// @Produce      json
// @Param        request body CreateExamRequest true "Exam and initial board"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /exams [post]
// @Security     BearerAuth
func (c *ExamController) CreateExam() {
	var req CreateExamRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.ParamError(c.Ctx, "invalid date, expected YYYY-MM-DD")
		return
	}

	status := models.ExamStatus(req.Status)
	if status == "" {
		status = models.ExamStatusPlanned
	}
	if !models.ValidExamStatus(status) {
		response.ParamError(c.Ctx, "invalid status")
		return
	}

	exam := &models.Exam{
		Name:          strings.TrimSpace(req.Name),
		Code:          strings.TrimSpace(req.Code),
		Date:          date,
		Status:        status,
		ProfessionID:  req.ProfessionID,
		InstitutionID: req.InstitutionID,
		ExamTypeID:    req.ExamTypeID,
		OperatorID:    middleware.CurrentOperatorID(c.Ctx),
	}

	board := make([]services.BoardMemberInput, 0, len(req.Board))
	for _, member := range req.Board {
		board = append(board, services.BoardMemberInput{
			ExaminerID: member.ExaminerID,
			Role:       strings.TrimSpace(member.Role),
		})
	}

	if err := c.service().CreateExam(exam, board); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, exam)
}

// UpdateExam partially updates an exam
// @Summary      Update exam
// @Tags         Exam
// @Accept       json
// @Produce      json
// @Param        id path int true "Exam ID"
// @Param        request body UpdateExamRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id} [put]
// @Security     BearerAuth
func (c *ExamController) UpdateExam() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateExamRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Code != "" {
		updates["code"] = strings.TrimSpace(req.Code)
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			response.ParamError(c.Ctx, "invalid date, expected YYYY-MM-DD")
			return
		}
		updates["date"] = date
	}
	if req.Status != "" {
		if !models.ValidExamStatus(models.ExamStatus(req.Status)) {
			response.ParamError(c.Ctx, "invalid status")
			return
		}
		updates["status"] = req.Status
	}
	if req.ProfessionID != 0 {
		updates["profession_id"] = req.ProfessionID
	}
	if req.InstitutionID != 0 {
		updates["institution_id"] = req.InstitutionID
	}
	if req.ExamTypeID != 0 {
		updates["exam_type_id"] = req.ExamTypeID
	}

	exam, err := c.service().UpdateExam(id, updates)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, exam)
}

// DeleteExam soft-deletes an exam and its board assignments
// @Summary      Delete exam
// @Description  Soft-deletes the exam; the cascade stamps its board rows too
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id} [delete]
// @Security     BearerAuth
func (c *ExamController) DeleteExam() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().SoftDeleteExam(id, middleware.CurrentOperatorID(c.Ctx)); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// RestoreExam restores a soft-deleted exam and its cascaded board rows
// @Summary      Restore exam
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id}/restore [post]
// @Security     BearerAuth
func (c *ExamController) RestoreExam() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	exam, err := c.service().RestoreExam(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, exam)
}

// GetBoard lists the exam's board assignments
// @Summary      Get exam board
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id}/board [get]
// @Security     BearerAuth
func (c *ExamController) GetBoard() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	board, err := c.service().GetBoard(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, board)
}

// AddBoardMember assigns an examiner to the exam board
// @Summary      Add board member
// @Tags         Exam
// @Accept       json
// @Produce      json
// @Param        id path int true "Exam ID"
// @Param        request body BoardMemberRequest true "Examiner and role"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id}/board [post]
// @Security     BearerAuth
func (c *ExamController) AddBoardMember() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req BoardMemberRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	member := services.BoardMemberInput{
		ExaminerID: req.ExaminerID,
		Role:       strings.TrimSpace(req.Role),
	}
	if err := c.service().AddBoardMember(id, member); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// RemoveBoardMember removes an examiner from the exam board
// @Summary      Remove board member
// @Tags         Exam
// @Produce      json
// @Param        id path int true "Exam ID"
// @Param        examiner_id path int true "Examiner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /exams/{id}/board/{examiner_id} [delete]
// @Security     BearerAuth
func (c *ExamController) RemoveBoardMember() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	examinerID, err := strconv.ParseUint(c.Ctx.Param("examiner_id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "invalid examiner_id parameter")
		return
	}

	if err := c.service().RemoveBoardMember(id, uint(examinerID)); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}
