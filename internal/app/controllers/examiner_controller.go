package controllers

import (
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

// InterfaceExaminerController defines the examiner controller interface
type InterfaceExaminerController interface {
	GetExaminers()
	GetExaminer()
	GetDeletedExaminers()
	CreateExaminer()
	UpdateExaminer()
	DeleteExaminer()
	RestoreExaminer()
}

// ExaminerController handles examiner requests
type ExaminerController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewExaminerController creates a new examiner controller
func NewExaminerController(ctx *gin.Context, container *container.ServiceContainer) *ExaminerController {
	return &ExaminerController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateExaminerRequest creates an examiner
type CreateExaminerRequest struct {
	Name               string `json:"name" binding:"required" example:"Jane Doe"`
	BirthDate          string `json:"birth_date" binding:"required" example:"1980-04-05"`
	Email              string `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone              string `json:"phone" binding:"required" example:"+36301234567"`
	IdentityCardNumber string `json:"identity_card_number" binding:"required" example:"123456AB"`
}

// UpdateExaminerRequest partially updates an examiner
type UpdateExaminerRequest struct {
	Name               string `json:"name" example:"Jane Doe"`
	BirthDate          string `json:"birth_date" example:"1980-04-05"`
	Email              string `json:"email" binding:"omitempty,email" example:"jane@example.com"`
	Phone              string `json:"phone" example:"+36301234567"`
	IdentityCardNumber string `json:"identity_card_number" example:"123456AB"`
}

// HandleExaminerFunc returns a gin handler dispatching to the named method
func HandleExaminerFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewExaminerController(ctx, container)

		switch method {
		case "getExaminers":
			controller.GetExaminers()
		case "getExaminer":
			controller.GetExaminer()
		case "getDeletedExaminers":
			controller.GetDeletedExaminers()
		case "createExaminer":
			controller.CreateExaminer()
		case "updateExaminer":
			controller.UpdateExaminer()
		case "deleteExaminer":
			controller.DeleteExaminer()
		case "restoreExaminer":
			controller.RestoreExaminer()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ExaminerController) service() services.InterfaceExaminerService {
	return c.Container.GetService("examiner").(services.InterfaceExaminerService)
}

// GetExaminers lists examiners
// @Summary      List examiners
// @Description  Returns a page of non-deleted examiners
// @Tags         Examiner
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        search query string false "Search in name and email"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /examiners [get]
// @Security     BearerAuth
func (c *ExaminerController) GetExaminers() {
	page, pageSize := pagination(c.Ctx)
	search := c.Ctx.Query("search")

	examiners, total, err := c.service().GetAllExaminers(page, pageSize, search)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, pagedBody(examiners, total, page, pageSize))
}

// GetExaminer returns one examiner with board assignments
// @Summary      Get examiner
// @Tags         Examiner
// @Produce      json
// @Param        id path int true "Examiner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /examiners/{id} [get]
// @Security     BearerAuth
func (c *ExaminerController) GetExaminer() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	examiner, err := c.service().GetExaminerByID(id, "Boards")
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, examiner)
}

// GetDeletedExaminers lists soft-deleted examiners
// @Summary      List deleted examiners
// @Tags         Examiner
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /examiners/deleted [get]
// @Security     BearerAuth
func (c *ExaminerController) GetDeletedExaminers() {
	examiners, err := c.service().GetDeletedExaminers()
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, examiners)
}

// CreateExaminer creates an examiner
// @Summary      Create examiner
// @Tags         Examiner
// @Accept       json
// @Produce      json
// @Param        request body CreateExaminerRequest true "Examiner"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /examiners [post]
// @Security     BearerAuth
func (c *ExaminerController) CreateExaminer() {
	var req CreateExaminerRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		response.ParamError(c.Ctx, "invalid birth_date, expected YYYY-MM-DD")
		return
	}

	examiner := &models.Examiner{
		Name:               strings.TrimSpace(req.Name),
		BirthDate:          birthDate,
		Email:              strings.TrimSpace(req.Email),
		Phone:              strings.TrimSpace(req.Phone),
		IdentityCardNumber: strings.TrimSpace(req.IdentityCardNumber),
	}

	if err := c.service().CreateExaminer(examiner); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, examiner)
}

// UpdateExaminer partially updates an examiner
// @Summary      Update examiner
// @Tags         Examiner
// @Accept       json
// @Produce      json
// @Param        id path int true "Examiner ID"
// @Param        request body UpdateExaminerRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /examiners/{id} [put]
// @Security     BearerAuth
func (c *ExaminerController) UpdateExaminer() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateExaminerRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			response.ParamError(c.Ctx, "invalid birth_date, expected YYYY-MM-DD")
			return
		}
		updates["birth_date"] = birthDate
	}
	if req.Email != "" {
		updates["email"] = strings.TrimSpace(req.Email)
	}
	if req.Phone != "" {
		updates["phone"] = strings.TrimSpace(req.Phone)
	}
	if req.IdentityCardNumber != "" {
		updates["identity_card_number"] = strings.TrimSpace(req.IdentityCardNumber)
	}

	examiner, err := c.service().UpdateExaminer(id, updates)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, examiner)
}

// DeleteExaminer soft-deletes an examiner and their board assignments
// @Summary      Delete examiner
// @Tags         Examiner
// @Produce      json
// @Param        id path int true "Examiner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /examiners/{id} [delete]
// @Security     BearerAuth
func (c *ExaminerController) DeleteExaminer() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().SoftDeleteExaminer(id, middleware.CurrentOperatorID(c.Ctx)); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// RestoreExaminer restores a soft-deleted examiner
// @Summary      Restore examiner
// @Tags         Examiner
// @Produce      json
// @Param        id path int true "Examiner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /examiners/{id}/restore [post]
// @Security     BearerAuth
func (c *ExaminerController) RestoreExaminer() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	examiner, err := c.service().RestoreExaminer(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, examiner)
}
