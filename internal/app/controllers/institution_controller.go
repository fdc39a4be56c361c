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

// InstitutionController handles institution lookup requests
type InstitutionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewInstitutionController creates a new institution controller
func NewInstitutionController(ctx *gin.Context, container *container.ServiceContainer) *InstitutionController {
	return &InstitutionController{
		Ctx:       ctx,
		Container: container,
	}
}

// InstitutionRequest creates an institution
type InstitutionRequest struct {
	EducationalID string `json:"educational_id" binding:"required" example:"OM123456"`
	Name          string `json:"name" binding:"required" example:"Technical College"`
	Address       string `json:"address" example:"Main street 1, Budapest"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email" example:"office@college.example"`
}

// HandleInstitutionFunc returns a gin handler dispatching to the named method
func HandleInstitutionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewInstitutionController(ctx, container)

		switch method {
		case "getInstitutions":
			controller.GetInstitutions()
		case "getInstitution":
			controller.GetInstitution()
		case "createInstitution":
			controller.CreateInstitution()
		case "updateInstitution":
			controller.UpdateInstitution()
		case "deleteInstitution":
			controller.DeleteInstitution()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *InstitutionController) service() services.InterfaceInstitutionService {
	return c.Container.GetService("institution").(services.InterfaceInstitutionService)
}

// GetInstitutions lists all institutions
// @Summary      List institutions
// @Tags         Lookup
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /institutions [get]
// @Security     BearerAuth
func (c *InstitutionController) GetInstitutions() {
	institutions, err := c.service().GetAllInstitutions()
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, institutions)
}

// GetInstitution returns one institution
// @Summary      Get institution
// @Tags         Lookup
// @Produce      json
// @Param        id path int true "Institution ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /institutions/{id} [get]
// @Security     BearerAuth
func (c *InstitutionController) GetInstitution() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	institution, err := c.service().GetInstitutionByID(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, institution)
}

// CreateInstitution creates an institution
// @Summary      Create institution
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Param        request body InstitutionRequest true "Institution"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /institutions [post]
// @Security     BearerAuth
func (c *InstitutionController) CreateInstitution() {
	var req InstitutionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	institution := &models.Institution{
		EducationalID: strings.TrimSpace(req.EducationalID),
		Name:          strings.TrimSpace(req.Name),
		Address:       strings.TrimSpace(req.Address),
		ContactEmail:  strings.TrimSpace(req.ContactEmail),
	}
	if err := c.service().CreateInstitution(institution); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, institution)
}

// UpdateInstitution partially updates an institution
// @Summary      Update institution
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Param        id path int true "Institution ID"
// @Param        request body InstitutionRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /institutions/{id} [put]
// @Security     BearerAuth
func (c *InstitutionController) UpdateInstitution() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req struct {
		EducationalID string `json:"educational_id"`
		Name          string `json:"name"`
		Address       string `json:"address"`
		ContactEmail  string `json:"contact_email"`
	}
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.EducationalID != "" {
		updates["educational_id"] = strings.TrimSpace(req.EducationalID)
	}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Address != "" {
		updates["address"] = strings.TrimSpace(req.Address)
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = strings.TrimSpace(req.ContactEmail)
	}

	institution, err := c.service().UpdateInstitution(id, updates)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, institution)
}

// DeleteInstitution deletes an institution not referenced by exams
// @Summary      Delete institution
// @Tags         Lookup
// @Produce      json
// @Param        id path int true "Institution ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /institutions/{id} [delete]
// @Security     BearerAuth
func (c *InstitutionController) DeleteInstitution() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().DeleteInstitution(id); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}
