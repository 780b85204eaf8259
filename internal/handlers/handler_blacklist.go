package handlers

import (
	"net/http"

	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// blacklistHandler handles HTTP requests for the blacklist registry.
type blacklistHandler struct {
	blacklistService portssvc.BlacklistSvcFacade
}

func newBlacklistHandler(bs portssvc.BlacklistSvcFacade) *blacklistHandler {
	return &blacklistHandler{blacklistService: bs}
}

// registerBlacklistRoutes registers the blacklist routes. The whole group is
// staff-only; removal is an admin operation.
func registerBlacklistRoutes(rg *gin.RouterGroup, blacklistService portssvc.BlacklistSvcFacade) {
	h := newBlacklistHandler(blacklistService)

	blacklist := rg.Group("/blacklist", middleware.RequireStaff())
	{
		blacklist.GET("", h.listBlacklist)
		blacklist.GET("/:id", h.getEntry)
		blacklist.POST("", h.addEntry)
		blacklist.DELETE("/:id", middleware.RequireAdmin(), h.removeEntry)
	}
}

// listBlacklist godoc
// @Summary List active blacklist entries
// @Tags blacklist
// @Produce json
// @Success 200 {object} dto.ListBlacklistResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blacklist [get]
func (h *blacklistHandler) listBlacklist(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.blacklistService.ListBlacklist(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list blacklist")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBlacklistResponse(entries))
}

// getEntry godoc
// @Summary Get a blacklist entry by ID
// @Tags blacklist
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.BlacklistEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blacklist/{id} [get]
func (h *blacklistHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.blacklistService.GetBlacklistEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Blacklist entry not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToBlacklistEntryResponse(entry))
}

// addEntry godoc
// @Summary Blacklist a user
// @Description Places a rental restriction on a user. The reason must be at least 10 characters.
// @Tags blacklist
// @Accept json
// @Produce json
// @Param entry body dto.AddBlacklistRequest true "Restriction details"
// @Success 201 {object} dto.BlacklistEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 409 {object} ErrorResponse "User already blacklisted"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blacklist [post]
func (h *blacklistHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddBlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.blacklistService.AddToBlacklist(c.Request.Context(), req.UserID, req.Reason, adminID, req.ExpirationDate)
	if err != nil {
		respondError(c, logger, err, "Failed to blacklist user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBlacklistEntryResponse(entry))
}

// removeEntry godoc
// @Summary Remove a blacklist entry
// @Description Lifts one restriction. The user stays blacklisted while other active entries remain. Admin only.
// @Tags blacklist
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blacklist/{id} [delete]
func (h *blacklistHandler) removeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	adminID, _ := middleware.GetUserIDFromContext(c)
	if err := h.blacklistService.RemoveFromBlacklist(c.Request.Context(), c.Param("id"), adminID); err != nil {
		respondError(c, logger, err, "Failed to remove blacklist entry")
		return
	}
	c.Status(http.StatusNoContent)
}
