package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// ExamTypeController handles exam type lookup requests
type ExamTypeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewExamTypeController creates a new exam type controller
func NewExamTypeController(ctx *gin.Context, container *container.ServiceContainer) *ExamTypeController {
	return &ExamTypeController{
		Ctx:       ctx,
		Container: container,
	}
}

// ExamTypeRequest creates or updates an exam type
type ExamTypeRequest struct {
	TypeName    string `json:"type_name" binding:"required" example:"written"`
	Description string `json:"description" example:"Written examination"`
}

// HandleExamTypeFunc returns a gin handler dispatching to the named method
func HandleExamTypeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewExamTypeController(ctx, container)

		switch method {
		case "getExamTypes":
			controller.GetExamTypes()
		case "getExamType":
			controller.GetExamType()
		case "createExamType":
			controller.CreateExamType()
		case "updateExamType":
			controller.UpdateExamType()
		case "deleteExamType":
			controller.DeleteExamType()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ExamTypeController) service() services.InterfaceExamTypeService {
	return c.Container.GetService("exam_type").(services.InterfaceExamTypeService)
}

// GetExamTypes lists all exam types
// @Summary      List exam types
// @Tags         Lookup
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /exam-types [get]
// @Security     BearerAuth
func (c *ExamTypeController) GetExamTypes() {
	examTypes, err := c.service().GetAllExamTypes()
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, examTypes)
}

// GetExamType returns one exam type
// @Summary      Get exam type
// @Tags         Lookup
// @Produce      json
// @Param        id path int true "Exam type ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /exam-types/{id} [get]
// @Security     BearerAuth
func (c *ExamTypeController) GetExamType() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	examType, err := c.service().GetExamTypeByID(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, examType)
}

// CreateExamType creates an exam type
// @Summary      Create exam type
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Param        request body ExamTypeRequest true "Exam type"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /exam-types [post]
// @Security     BearerAuth
func (c *ExamTypeController) CreateExamType() {
	var req ExamTypeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	examType := &models.ExamType{
		TypeName:    strings.TrimSpace(req.TypeName),
		Description: strings.TrimSpace(req.Description),
	}
	if err := c.service().CreateExamType(examType); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, examType)
}

// UpdateExamType partially updates an exam type
// @Summary      Update exam type
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Param        id path int true "Exam type ID"
// @Param        request body ExamTypeRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /exam-types/{id} [put]
// @Security     BearerAuth
func (c *ExamTypeController) UpdateExamType() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req struct {
		TypeName    string `json:"type_name"`
		Description string `json:"description"`
	}
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.TypeName != "" {
		updates["type_name"] = strings.TrimSpace(req.TypeName)
	}
	if req.Description != "" {
		updates["description"] = strings.TrimSpace(req.Description)
	}

	examType, err := c.service().UpdateExamType(id, updates)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, examType)
}

// DeleteExamType deletes an exam type not referenced by exams
// @Summary      Delete exam type
// @Tags         Lookup
// @Produce      json
// @Param        id path int true "Exam type ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /exam-types/{id} [delete]
// @Security     BearerAuth
func (c *ExamTypeController) DeleteExamType() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().DeleteExamType(id); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}
