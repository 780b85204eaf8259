package handlers

import (
	"net/http"

	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vehicleHandler handles HTTP requests for the vehicle directory.
type vehicleHandler struct {
	vehicleService portssvc.VehicleSvcFacade
}

func newVehicleHandler(vs portssvc.VehicleSvcFacade) *vehicleHandler {
	return &vehicleHandler{vehicleService: vs}
}

// registerVehicleRoutes registers all vehicle-related routes. Reads are open
// to any authenticated user; mutations are staff operations.
func registerVehicleRoutes(rg *gin.RouterGroup, vehicleService portssvc.VehicleSvcFacade) {
	h := newVehicleHandler(vehicleService)

	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/available", h.listAvailableVehicles)
		vehicles.GET("/search", h.searchVehicles)
		vehicles.GET("/:id", h.getVehicle)
		vehicles.GET("/:id/stock", middleware.RequireStaff(), h.getVehicleStock)
		vehicles.POST("", middleware.RequireStaff(), h.createVehicle)
		vehicles.PUT("/:id", middleware.RequireStaff(), h.updateVehicle)
		vehicles.PATCH("/:id/availability", middleware.RequireStaff(), h.toggleAvailability)
		vehicles.DELETE("/:id", middleware.RequireAdmin(), h.deleteVehicle)
	}
}

// listVehicles godoc
// @Summary List all vehicles
// @Tags vehicles
// @Produce json
// @Success 200 {object} dto.ListVehiclesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [get]
func (h *vehicleHandler) listVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list vehicles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVehiclesResponse(vehicles))
}

// listAvailableVehicles godoc
// @Summary List vehicles open for booking
// @Tags vehicles
// @Produce json
// @Success 200 {object} dto.ListVehiclesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/available [get]
func (h *vehicleHandler) listAvailableVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	vehicles, err := h.vehicleService.ListAvailableVehicles(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list vehicles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVehiclesResponse(vehicles))
}

// searchVehicles godoc
// @Summary Search vehicles
// @Description Case-insensitive search over brand, model and color, optionally restricted to a branch.
// @Tags vehicles
// @Produce json
// @Param q query string false "Search term"
// @Param branchID query string false "Branch ID"
// @Success 200 {object} dto.ListVehiclesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/search [get]
func (h *vehicleHandler) searchVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchVehiclesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	vehicles, err := h.vehicleService.SearchVehicles(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to search vehicles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVehiclesResponse(vehicles))
}

// getVehicle godoc
// @Summary Get a vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *vehicleHandler) getVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Vehicle not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// getVehicleStock godoc
// @Summary List a vehicle's per-branch stock
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.ListVehicleStockResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id}/stock [get]
func (h *vehicleHandler) getVehicleStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stock, err := h.vehicleService.GetVehicleStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Vehicle not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVehicleStockResponse(stock))
}

// createVehicle godoc
// @Summary Add a vehicle
// @Description Adds a vehicle to a branch. Staff only.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [post]
func (h *vehicleHandler) createVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	creatorID, _ := middleware.GetUserIDFromContext(c)
	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create vehicle")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVehicleResponse(vehicle))
}

// updateVehicle godoc
// @Summary Update a vehicle
// @Description Applies the provided fields to a vehicle. Staff only.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param vehicle body dto.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [put]
func (h *vehicleHandler) updateVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	requesterID, _ := middleware.GetUserIDFromContext(c)
	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// toggleAvailability godoc
// @Summary Toggle a vehicle's availability
// @Description Flips the availability flag. Re-enabling is refused while an active rental holds the vehicle. Staff only.
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Vehicle has an active rental"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id}/availability [patch]
func (h *vehicleHandler) toggleAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requesterID, _ := middleware.GetUserIDFromContext(c)
	vehicle, err := h.vehicleService.ToggleAvailability(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to toggle availability")
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// deleteVehicle godoc
// @Summary Delete a vehicle
// @Description Removes a vehicle. With rental history the vehicle is marked unavailable instead, unless force=true removes the history too. Admin only.
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param force query bool false "Remove rental history as well" default(false)
// @Success 200 {object} map[string]string
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Vehicle has an active rental"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func (h *vehicleHandler) deleteVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	force := c.Query("force") == "true"
	requesterID, _ := middleware.GetUserIDFromContext(c)

	outcome, err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id"), force, requesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete vehicle")
		return
	}
	if outcome == portssvc.VehicleMarkedUnavailable {
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle has rental history and was marked unavailable instead of deleted"})
		return
	}
	c.Status(http.StatusNoContent)
}
