package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
	"github.com/fondosar/backoffice_api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests related to client settlements.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers all settlement-related routes.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := rg.Group("/settlements")
	{
		settlements.GET("", h.listSettlements)
		settlements.GET("/:id", h.getSettlement)
		settlements.POST("", h.createSettlement)
		settlements.DELETE("/:id", h.deleteSettlement)
	}
}

// createSettlement godoc
// @Summary Create a settlement
// @Description Creates a settlement header with its line collections in one database transaction. At least one invoice line is required.
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement body dto.CreateSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input or no invoice lines"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Missing write scope"
// @Failure 500 {object} map[string]string "Failed to create settlement"
// @Security BearerAuth
// @Router /settlements [post]
func (h *settlementHandler) createSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.CreateSettlement(c.Request.Context(), req, userID)
	if err != nil {
		h.respondSettlementError(c, logger, err, "Failed to create settlement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// getSettlement godoc
// @Summary Get a settlement by ID
// @Description Retrieves a settlement with its lines. The final total is recomputed from the reloaded lines.
// @Tags settlements
// @Produce json
// @Param id path string true "Settlement ID"
// @Success 200 {object} dto.SettlementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve settlement"
// @Security BearerAuth
// @Router /settlements/{id} [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settlement, err := h.settlementService.GetSettlementByID(c.Request.Context(), settlementID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		} else {
			logger.Error("Failed to get settlement", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settlement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// listSettlements godoc
// @Summary List settlements
// @Description Lists settlements on visible funds, newest first, with cursor pagination.
// @Tags settlements
// @Produce json
// @Param clientID query string false "Filter by client"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListSettlementsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list settlements"
// @Security BearerAuth
// @Router /settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListSettlementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.settlementService.ListSettlements(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list settlements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlements"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deleteSettlement godoc
// @Summary Delete a settlement
// @Description Deletes a settlement and all its lines in one database transaction (admin role required).
// @Tags settlements
// @Produce json
// @Param id path string true "Settlement ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Settlement not found"
// @Failure 500 {object} map[string]string "Failed to delete settlement"
// @Security BearerAuth
// @Router /settlements/{id} [delete]
func (h *settlementHandler) deleteSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.settlementService.DeleteSettlement(c.Request.Context(), settlementID, userID); err != nil {
		h.respondSettlementError(c, logger, err, "Failed to delete settlement")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *settlementHandler) respondSettlementError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
