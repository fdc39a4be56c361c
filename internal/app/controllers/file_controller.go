package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/app/middleware"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// maxImportSize caps uploaded spreadsheets at 10 MiB
const maxImportSize = 10 << 20

// FileController handles spreadsheet exports, imports, PDF reports and the
// file history
type FileController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFileController creates a new file controller
func NewFileController(ctx *gin.Context, container *container.ServiceContainer) *FileController {
	return &FileController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleFileFunc returns a gin handler dispatching to the named method
func HandleFileFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFileController(ctx, container)

		switch method {
		case "exportExams":
			controller.ExportExams()
		case "exportExaminers":
			controller.ExportExaminers()
		case "examinerTemplate":
			controller.ExaminerTemplate()
		case "importExaminers":
			controller.ImportExaminers()
		case "examReport":
			controller.ExamReport()
		case "examinerRoster":
			controller.ExaminerRoster()
		case "getFileHistory":
			controller.GetFileHistory()
		case "downloadFile":
			controller.DownloadFile()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *FileController) excel() services.InterfaceExcelService {
	return c.Container.GetService("excel").(services.InterfaceExcelService)
}

func (c *FileController) reports() services.InterfaceReportService {
	return c.Container.GetService("report").(services.InterfaceReportService)
}

func (c *FileController) history() services.InterfaceFileHistoryService {
	return c.Container.GetService("file_history").(services.InterfaceFileHistoryService)
}

// serveFile streams a generated document as an attachment
func (c *FileController) serveFile(file *services.ExportedFile) {
	c.Ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Ctx.Data(http.StatusOK, file.ContentType, file.Content)
}

// ExportExams downloads all exams as a workbook
// @Summary      Export exams
// @Tags         File
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      500  {object}  ErrorResponse
// @Router       /files/exams/export [get]
// @Security     BearerAuth
func (c *FileController) ExportExams() {
	file, err := c.excel().ExportExams(middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	c.serveFile(file)
}

// ExportExaminers downloads all examiners as a workbook
// @Summary      Export examiners
// @Tags         File
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      500  {object}  ErrorResponse
// @Router       /files/examiners/export [get]
// @Security     BearerAuth
func (c *FileController) ExportExaminers() {
	file, err := c.excel().ExportExaminers(middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	c.serveFile(file)
}

// ExaminerTemplate downloads the empty examiner import template
// @Summary      Examiner import template
// @Tags         File
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /files/examiners/template [get]
// @Security     BearerAuth
func (c *FileController) ExaminerTemplate() {
	file, err := c.excel().ExaminerTemplate(middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	c.serveFile(file)
}

// ImportExaminers uploads a workbook of examiners
// @Summary      Import examiners
// @Description  All-or-nothing import; any bad row rejects the whole file
// @Tags         File
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Workbook in the template layout"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /files/examiners/import [post]
// @Security     BearerAuth
func (c *FileController) ImportExaminers() {
	header, err := c.Ctx.FormFile("file")
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "missing file upload", nil)
		return
	}
	if header.Size > maxImportSize {
		response.ParamError(c.Ctx, "file too large")
		return
	}

	opened, err := header.Open()
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	defer opened.Close()

	result, err := c.excel().ImportExaminers(opened, header.Filename, middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		errorCode := code.CodeOf(err)
		if errorCode == code.ErrUnknown {
			response.FailError(c.Ctx, err)
			return
		}
		body := gin.H{}
		if result != nil {
			body["row_errors"] = result.RowErrors
		}
		response.FailWithMessage(c.Ctx, errorCode, err.Error(), body)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, result)
}

// ExamReport downloads the PDF summary of one exam
// @Summary      Exam report
// @Tags         File
// @Produce      application/pdf
// @Param        id path int true "Exam ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  ErrorResponse
// @Router       /files/exams/{id}/report [get]
// @Security     BearerAuth
func (c *FileController) ExamReport() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	file, err := c.reports().ExamReport(id, middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	c.serveFile(file)
}

// ExaminerRoster downloads the PDF roster of all examiners
// @Summary      Examiner roster
// @Tags         File
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  ErrorResponse
// @Router       /files/examiners/roster [get]
// @Security     BearerAuth
func (c *FileController) ExaminerRoster() {
	file, err := c.reports().ExaminerRoster(middleware.CurrentOperatorID(c.Ctx))
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	c.serveFile(file)
}

// GetFileHistory lists recorded file activities
// @Summary      List file history
// @Tags         File
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 10"
// @Param        category query string false "Filter by category: exam or examiner"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /files/history [get]
// @Security     BearerAuth
func (c *FileController) GetFileHistory() {
	page, pageSize := pagination(c.Ctx)
	category := models.FileCategory(c.Ctx.Query("category"))

	entries, total, err := c.history().GetAllFileHistory(page, pageSize, category)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, pagedBody(entries, total, page, pageSize))
}

// DownloadFile re-downloads a previously recorded file
// @Summary      Download recorded file
// @Tags         File
// @Produce      octet-stream
// @Param        id path int true "File history ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  ErrorResponse
// @Router       /files/history/{id}/download [get]
// @Security     BearerAuth
func (c *FileController) DownloadFile() {
	id, ok := pathID(c.Ctx)
	if !ok {
		return
	}

	entry, err := c.history().GetFileHistoryByID(id)
	if err != nil {
		response.FailError(c.Ctx, err)
		return
	}
	if len(entry.Content) == 0 {
		response.Fail(c.Ctx, code.ErrFileNotFound, nil)
		return
	}

	c.Ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entry.FileName))
	c.Ctx.Data(http.StatusOK, entry.ContentType, entry.Content)
}
