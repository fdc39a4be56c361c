package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services/container"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
)

// HealthCheckController answers liveness probes
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController creates a health check controller instance
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// Ping reports service and database health
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	dbStatus := "healthy"
	if sqlDB, err := h.Container.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	response.Success(c, gin.H{
		"status":   "healthy",
		"database": dbStatus,
		"message":  "pong",
	})
}
