package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// InterfaceOperatorController defines the operator controller interface
type InterfaceOperatorController interface {
	GetOperators()
	GetOperator()
	GetDeletedOperators()
	CreateOperator()
	UpdateOperator()
	DeleteOperator()
	RestoreOperator()
}

// OperatorController handles operator account requests
type OperatorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOperatorController creates a new operator controller
func NewOperatorController(ctx *gin.Context, container *container.ServiceContainer) *OperatorController {
	return &OperatorController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateOperatorRequest creates an operator account
type CreateOperatorRequest struct {
	UserName string `json:"user_name" binding:"required" example:"jsmith"`
	Password string `json:"password" binding:"required,min=8" example:"Operator@123"`
	Name     string `json:"name" binding:"required" example:"John Smith"`
	Role     string `json:"role" example:"operator"`
	Email    string `json:"email" binding:"omitempty,email" example:"jsmith@example.com"`
}

// UpdateOperatorRequest partially updates an operator account
type UpdateOperatorRequest struct {
	Name  string `json:"name" example:"John Smith"`
	Role  string `json:"role" example:"staff"`
	Email string `json:"email" binding:"omitempty,email" example:"jsmith@example.com"`
}

// HandleOperatorFunc returns a gin handler dispatching to the named method
func HandleOperatorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOperatorController(ctx, container)

		switch method {
		case "getOperators":
			controller.GetOperators()
		case "getOperator":
			controller.GetOperator()
		case "getDeletedOperators":
			controller.GetDeletedOperators()
		case "createOperator":
			controller.CreateOperator()
		case "updateOperator":
			controller.UpdateOperator()
		case "deleteOperator":
			controller.DeleteOperator()
		case "restoreOperator":
			controller.RestoreOperator()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *OperatorController) service() services.InterfaceOperatorService {
	return c.Container.GetService("operator").(services.InterfaceOperatorService)
}

// GetOperators lists operator accounts
// @Summary      List operators
// @Description  Returns a page of non-deleted operator accounts
// @Tags         Operator
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        search query string false "Search in username and name"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /operators [get]
// @Security     BearerAuth
func (c *OperatorController) GetOperators() {
	page, pageSize := pagination(c.Ctx)
	search := c.Ctx.Query("search")

	operators, total, err := c.service().GetAllOperators(page, pageSize, search)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, pagedBody(operators, total, page, pageSize))
}

// GetOperator returns one operator
// @Summary      Get operator
// @Tags         Operator
// @Produce      json
// @Param        id path int true "Operator ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /operators/{id} [get]
// @Security     BearerAuth
func (c *OperatorController) GetOperator() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	operator, err := c.service().GetOperatorByID(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, operator)
}

// GetDeletedOperators lists soft-deleted operators
// @Summary      List deleted operators
// @Tags         Operator
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /operators/deleted [get]
// @Security     BearerAuth
func (c *OperatorController) GetDeletedOperators() {
	operators, err := c.service().GetDeletedOperators()
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, operators)
}

// CreateOperator creates an operator account
// @Summary      Create operator
// @Tags         Operator
// @Accept       json
// @Produce      json
// @Param        request body CreateOperatorRequest true "Operator account"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /operators [post]
// @Security     BearerAuth
func (c *OperatorController) CreateOperator() {
	var req CreateOperatorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	role := models.OperatorRole(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleOperator
	}

	operator := &models.Operator{
		UserName: strings.TrimSpace(req.UserName),
		Password: req.Password, // hashed in the service layer
		Name:     strings.TrimSpace(req.Name),
		Role:     role,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		operator.Email = &email
	}

	if err := c.service().CreateOperator(operator); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, operator)
}

// UpdateOperator partially updates an operator account
// @Summary      Update operator
// @Tags         Operator
// @Accept       json
// @Produce      json
// @Param        id path int true "Operator ID"
// @Param        request body UpdateOperatorRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /operators/{id} [put]
// @Security     BearerAuth
func (c *OperatorController) UpdateOperator() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req UpdateOperatorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Email != "" {
		updates["email"] = strings.TrimSpace(req.Email)
	}

	operator, err := c.service().UpdateOperator(id, updates)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, operator)
}

// DeleteOperator soft-deletes an operator account
// @Summary      Delete operator
// @Description  Soft-deletes the account; the last admin cannot be deleted
// @Tags         Operator
// @Produce      json
// @Param        id path int true "Operator ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /operators/{id} [delete]
// @Security     BearerAuth
func (c *OperatorController) DeleteOperator() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().SoftDeleteOperator(id, middleware.CurrentOperatorID(c.Ctx)); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}

// RestoreOperator restores a soft-deleted operator account
// @Summary      Restore operator
// @Tags         Operator
// @Produce      json
// @Param        id path int true "Operator ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /operators/{id}/restore [post]
// @Security     BearerAuth
func (c *OperatorController) RestoreOperator() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	operator, err := c.service().RestoreOperator(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, operator)
}

// pagedBody shapes a page of rows into the list response body
func pagedBody(data interface{}, total int64, page, pageSize int) gin.H {
	return gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        data,
	}
}

// pagination reads the page and page_size query parameters with defaults
func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// pathID parses the id path parameter, writing the error response itself
func pathID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(ctx, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}
