package handlers

import (
	"net/http"

	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// branchHandler handles HTTP requests for branch management.
type branchHandler struct {
	branchService  portssvc.BranchSvcFacade
	vehicleService portssvc.VehicleSvcFacade
}

func newBranchHandler(bs portssvc.BranchSvcFacade, vs portssvc.VehicleSvcFacade) *branchHandler {
	return &branchHandler{branchService: bs, vehicleService: vs}
}

// registerBranchRoutes registers all branch-related routes.
func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade, vehicleService portssvc.VehicleSvcFacade) {
	h := newBranchHandler(branchService, vehicleService)

	branches := rg.Group("/branches")
	{
		branches.GET("", h.listBranches)
		branches.GET("/:id", h.getBranch)
		branches.GET("/:id/vehicles", h.listBranchVehicles)
		branches.POST("", middleware.RequireStaff(), h.createBranch)
		branches.PUT("/:id", middleware.RequireStaff(), h.updateBranch)
		branches.DELETE("/:id", middleware.RequireAdmin(), h.deleteBranch)
	}
}

// listBranches godoc
// @Summary List branches
// @Tags branches
// @Produce json
// @Success 200 {object} dto.ListBranchesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list branches")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBranchesResponse(branches))
}

// getBranch godoc
// @Summary Get a branch by ID
// @Tags branches
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{id} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Branch not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// listBranchVehicles godoc
// @Summary List a branch's vehicles
// @Tags branches
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} dto.ListVehiclesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{id}/vehicles [get]
func (h *branchHandler) listBranchVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("id")

	if _, err := h.branchService.GetBranchByID(c.Request.Context(), branchID); err != nil {
		respondError(c, logger, err, "Branch not found")
		return
	}

	vehicles, err := h.vehicleService.SearchVehicles(c.Request.Context(), dto.SearchVehiclesParams{BranchID: branchID})
	if err != nil {
		respondError(c, logger, err, "Failed to list branch vehicles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVehiclesResponse(vehicles))
}

// createBranch godoc
// @Summary Open a branch
// @Description Creates a new branch. Staff only.
// @Tags branches
// @Accept json
// @Produce json
// @Param branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorID, _ := middleware.GetUserIDFromContext(c)
	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create branch")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// updateBranch godoc
// @Summary Update a branch
// @Description Applies the provided fields to a branch. Staff only.
// @Tags branches
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param branch body dto.UpdateBranchRequest true "Fields to update"
// @Success 200 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{id} [put]
func (h *branchHandler) updateBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	requesterID, _ := middleware.GetUserIDFromContext(c)
	branch, err := h.branchService.UpdateBranch(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to update branch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// deleteBranch godoc
// @Summary Delete a branch
// @Description Removes a branch with no vehicles. Admin only.
// @Tags branches
// @Produce json
// @Param id path string true "Branch ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Branch still has vehicles"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{id} [delete]
func (h *branchHandler) deleteBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.branchService.DeleteBranch(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete branch")
		return
	}
	c.Status(http.StatusNoContent)
}
