package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portssvc "github.com/fondosar/backoffice_api/internal/core/ports/services"
	"github.com/fondosar/backoffice_api/internal/dto"
	"github.com/fondosar/backoffice_api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// fundHandler handles HTTP requests for funds, effective access and role
// administration.
type fundHandler struct {
	fundService   portssvc.FundSvcFacade
	accessService portssvc.AccessSvcFacade
}

// newFundHandler creates a new fundHandler.
func newFundHandler(fs portssvc.FundSvcFacade, as portssvc.AccessSvcFacade) *fundHandler {
	return &fundHandler{
		fundService:   fs,
		accessService: as,
	}
}

// RegisterFundRoutes registers fund, access and role routes. Exported for
// handler tests that mount the group on a bare router.
func RegisterFundRoutes(rg *gin.RouterGroup, fundService portssvc.FundSvcFacade, accessService portssvc.AccessSvcFacade) {
	h := newFundHandler(fundService, accessService)

	funds := rg.Group("/funds")
	{
		funds.GET("", h.listFunds)
		funds.GET("/:id", h.getFund)
		funds.POST("", h.createFund)
		funds.PUT("/:id", h.updateFund)
	}

	rg.GET("/me/access", h.getMyAccess)

	roles := rg.Group("/roles")
	{
		roles.GET("", h.listRoles)
		roles.POST("", h.createRole)
		roles.POST("/assign", h.assignRole)
		roles.POST("/revoke", h.revokeRole)
		roles.POST("/:id/funds", h.grantFundAccess)
		roles.DELETE("/:id/funds/:fundID", h.revokeFundAccess)
	}
}

// getMyAccess godoc
// @Summary Get effective fund access
// @Description Returns the calling user's effective scope per fund, resolved across all their roles.
// @Tags access
// @Produce json
// @Success 200 {object} dto.EffectiveAccessResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to resolve access"
// @Security BearerAuth
// @Router /me/access [get]
func (h *fundHandler) getMyAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	access, err := h.accessService.ResolveEffectiveAccess(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to resolve effective access", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEffectiveAccessResponse(access))
}

// listFunds godoc
// @Summary List funds
// @Description Lists the funds visible to the calling user.
// @Tags funds
// @Produce json
// @Param includeInactive query bool false "Include inactive funds" default(false)
// @Success 200 {object} dto.ListFundsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list funds"
// @Security BearerAuth
// @Router /funds [get]
func (h *fundHandler) listFunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	funds, err := h.fundService.ListFunds(c.Request.Context(), userID, includeInactive)
	if err != nil {
		logger.Error("Failed to list funds", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list funds"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFundsResponse(funds))
}

// getFund godoc
// @Summary Get a fund by ID
// @Description Retrieves a fund. 404 when it does not exist or the caller has no access to it.
// @Tags funds
// @Produce json
// @Param id path string true "Fund ID"
// @Success 200 {object} dto.FundResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fund not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fund"
// @Security BearerAuth
// @Router /funds/{id} [get]
func (h *fundHandler) getFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fund, err := h.fundService.GetFundByID(c.Request.Context(), fundID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fund not found"})
		} else {
			logger.Error("Failed to get fund", slog.String("error", err.Error()), slog.String("fund_id", fundID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fund"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}

// createFund godoc
// @Summary Create a fund
// @Description Creates a new fund (admin role required).
// @Tags funds
// @Accept json
// @Produce json
// @Param fund body dto.CreateFundRequest true "Fund details"
// @Success 201 {object} dto.FundResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Fund name already exists"
// @Failure 500 {object} map[string]string "Failed to create fund"
// @Security BearerAuth
// @Router /funds [post]
func (h *fundHandler) createFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.CreateFund(c.Request.Context(), req, userID)
	if err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to create fund")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFundResponse(fund))
}

// updateFund godoc
// @Summary Update a fund
// @Description Updates fund name, description or active flag (admin role required).
// @Tags funds
// @Accept json
// @Produce json
// @Param id path string true "Fund ID"
// @Param fund body dto.UpdateFundRequest true "Fields to update"
// @Success 200 {object} dto.FundResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fund not found"
// @Failure 500 {object} map[string]string "Failed to update fund"
// @Security BearerAuth
// @Router /funds/{id} [put]
func (h *fundHandler) updateFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fundID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fund, err := h.fundService.UpdateFund(c.Request.Context(), fundID, req, userID)
	if err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to update fund")
		return
	}

	c.JSON(http.StatusOK, dto.ToFundResponse(fund))
}

// respondFundWriteError maps service errors from fund/role writes onto HTTP
// statuses.
func (h *fundHandler) respondFundWriteError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// createRole godoc
// @Summary Create a role
// @Description Creates a named role (admin role required).
// @Tags roles
// @Accept json
// @Produce json
// @Param role body dto.CreateRoleRequest true "Role name"
// @Success 201 {object} dto.RoleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Role name already exists"
// @Security BearerAuth
// @Router /roles [post]
func (h *fundHandler) createRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	role, err := h.accessService.CreateRole(c.Request.Context(), req.Name, userID)
	if err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to create role")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleResponse(role))
}

// listRoles godoc
// @Summary List roles
// @Description Lists all roles (admin role required).
// @Tags roles
// @Produce json
// @Success 200 {object} dto.ListRolesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /roles [get]
func (h *fundHandler) listRoles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	roles, err := h.accessService.ListRoles(c.Request.Context(), userID)
	if err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to list roles")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRolesResponse(roles))
}

// assignRole godoc
// @Summary Assign a role to a user
// @Description Grants the role to the target user (admin role required).
// @Tags roles
// @Accept json
// @Produce json
// @Param assignment body dto.AssignRoleRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User or role not found"
// @Failure 409 {object} map[string]string "Role already assigned"
// @Security BearerAuth
// @Router /roles/assign [post]
func (h *fundHandler) assignRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.accessService.AssignRole(c.Request.Context(), req.UserID, req.RoleID, userID); err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to assign role")
		return
	}

	c.Status(http.StatusNoContent)
}

// revokeRole godoc
// @Summary Revoke a role from a user
// @Description Removes the role from the target user (admin role required).
// @Tags roles
// @Accept json
// @Produce json
// @Param assignment body dto.AssignRoleRequest true "User and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /roles/revoke [post]
func (h *fundHandler) revokeRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.accessService.RevokeRole(c.Request.Context(), req.UserID, req.RoleID, userID); err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to revoke role")
		return
	}

	c.Status(http.StatusNoContent)
}

// grantFundAccess godoc
// @Summary Grant fund access to a role
// @Description Grants or updates the role's scope on a fund (admin role required).
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param grant body dto.GrantFundAccessRequest true "Fund and scope"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Role or fund not found"
// @Security BearerAuth
// @Router /roles/{id}/funds [post]
func (h *fundHandler) grantFundAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roleID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GrantFundAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	grant := domain.RoleFundAccess{
		RoleID: roleID,
		FundID: req.FundID,
		Scope:  req.Scope,
	}
	if err := h.accessService.GrantFundAccess(c.Request.Context(), roleID, grant, userID); err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to grant fund access")
		return
	}

	c.Status(http.StatusNoContent)
}

// revokeFundAccess godoc
// @Summary Revoke fund access from a role
// @Description Removes the role's grant on a fund (admin role required).
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Param fundID path string true "Fund ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Grant not found"
// @Security BearerAuth
// @Router /roles/{id}/funds/{fundID} [delete]
func (h *fundHandler) revokeFundAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roleID := c.Param("id")
	fundID := c.Param("fundID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accessService.RevokeFundAccess(c.Request.Context(), roleID, fundID, userID); err != nil {
		h.respondFundWriteError(c, logger, err, "Failed to revoke fund access")
		return
	}

	c.Status(http.StatusNoContent)
}
