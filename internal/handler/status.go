package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness-backend/internal/model"
	"wellness-backend/internal/service"
)

type StatusHandler struct {
	statusService *service.StatusService
}

func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

func (h *StatusHandler) CreateStatusCheck(c *gin.Context) {
	var req model.StatusCheckCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := h.statusService.CreateStatusCheck(c.Request.Context(), req.ClientName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, check)
}

func (h *StatusHandler) GetStatusChecks(c *gin.Context) {
	checks, err := h.statusService.ListStatusChecks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if checks == nil {
		checks = []*model.StatusCheck{}
	}

	c.JSON(http.StatusOK, checks)
}
