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

// ProfessionController handles profession lookup requests
type ProfessionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProfessionController creates a new profession controller
func NewProfessionController(ctx *gin.Context, container *container.ServiceContainer) *ProfessionController {
	return &ProfessionController{
		Ctx:       ctx,
		Container: container,
	}
}

// ProfessionRequest creates a profession
type ProfessionRequest struct {
	KeorID      string `json:"keor_id" binding:"required" example:"0613"`
	Name        string `json:"name" binding:"required" example:"Carpenter"`
	Description string `json:"description" example:"Woodworking profession"`
}

// HandleProfessionFunc returns a gin handler dispatching to the named method
func HandleProfessionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProfessionController(ctx, container)

		switch method {
		case "getProfessions":
			controller.GetProfessions()
		case "getProfession":
			controller.GetProfession()
		case "createProfession":
			controller.CreateProfession()
		case "updateProfession":
			controller.UpdateProfession()
		case "deleteProfession":
			controller.DeleteProfession()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ProfessionController) service() services.InterfaceProfessionService {
	return c.Container.GetService("profession").(services.InterfaceProfessionService)
}

// GetProfessions lists all professions
// @Summary      List professions
// @Tags         Lookup
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /professions [get]
// @Security     BearerAuth
func (c *ProfessionController) GetProfessions() {
	professions, err := c.service().GetAllProfessions()
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, professions)
}

// GetProfession returns one profession
// @Summary      Get profession
// @Tags         Lookup
// @Produce      json
// @Param        id path int true "Profession ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /professions/{id} [get]
// @Security     BearerAuth
func (c *ProfessionController) GetProfession() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	profession, err := c.service().GetProfessionByID(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, profession)
}

// CreateProfession creates a profession
// @Summary      Create profession
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Param        request body ProfessionRequest true "Profession"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /professions [post]
// @Security     BearerAuth
func (c *ProfessionController) CreateProfession() {
	var req ProfessionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	profession := &models.Profession{
		KeorID:      strings.TrimSpace(req.KeorID),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := c.service().CreateProfession(profession); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, profession)
}

// UpdateProfession partially updates a profession
// @Summary      Update profession
// @Tags         Lookup
// @Accept       json
// @Produce      json
// @Param        id path int true "Profession ID"
// @Param        request body ProfessionRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /professions/{id} [put]
// @Security     BearerAuth
func (c *ProfessionController) UpdateProfession() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	var req struct {
		KeorID      string `json:"keor_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters: "+err.Error(), nil)
		return
	}

	updates := map[string]interface{}{}
	if req.KeorID != "" {
		updates["keor_id"] = strings.TrimSpace(req.KeorID)
	}
	if req.Name != "" {
		updates["name"] = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		updates["description"] = strings.TrimSpace(req.Description)
	}

	profession, err := c.service().UpdateProfession(id, updates)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, profession)
}

// DeleteProfession deletes a profession not referenced by exams
// @Summary      Delete profession
// @Tags         Lookup
// @Produce      json
// @Param        id path int true "Profession ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /professions/{id} [delete]
// @Security     BearerAuth
func (c *ProfessionController) DeleteProfession() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	if err := c.service().DeleteProfession(id); err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, nil)
}
