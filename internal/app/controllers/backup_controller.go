package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// BackupController handles database backup and restore requests
type BackupController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBackupController creates a new backup controller
func NewBackupController(ctx *gin.Context, container *container.ServiceContainer) *BackupController {
	return &BackupController{
		Ctx:       ctx,
		Container: container,
	}
}

// RestoreRequest names the backup workbook to restore from
type RestoreRequest struct {
	FileName string `json:"file_name" binding:"required" example:"backup_20250612_083000.xlsx"`
}

// HandleBackupFunc returns a gin handler dispatching to the named method
func HandleBackupFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBackupController(ctx, container)

		switch method {
		case "createBackup":
			controller.CreateBackup()
		case "restoreBackup":
			controller.RestoreBackup()
		case "getBackups":
			controller.GetBackups()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *BackupController) service() services.InterfaceBackupService {
	return c.Container.GetService("backup").(services.InterfaceBackupService)
}

// CreateBackup dumps the domain tables into a new backup workbook
// @Summary      Create backup
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /backups [post]
// @Security     BearerAuth
func (c *BackupController) CreateBackup() {
	entry, err := c.service().CreateBackup(middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, entry)
}

// RestoreBackup replaces the domain tables from a backup workbook
// @Summary      Restore backup
// @Description  Replaces all domain tables atomically from the named backup
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Param        request body RestoreRequest true "Backup file name"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /backups/restore [post]
// @Security     BearerAuth
func (c *BackupController) RestoreBackup() {
	var req RestoreRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters", nil)
		return
	}

	entry, err := c.service().RestoreBackup(req.FileName, middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, entry)
}

// GetBackups lists backup and restore history
// @Summary      List backups
// @Tags         Backup
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /backups [get]
// @Security     BearerAuth
func (c *BackupController) GetBackups() {
	page, pageSize := pagination(c.Ctx)

	entries, total, err := c.service().GetAllBackups(page, pageSize)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, pagedBody(entries, total, page, pageSize))
}
