package handlers

import (
	"log/slog"
	"net/http"

	"github.com/carrentpro/crp_backend/internal/core/domain"
	portssvc "github.com/carrentpro/crp_backend/internal/core/ports/services"
	"github.com/carrentpro/crp_backend/internal/dto"
	"github.com/carrentpro/crp_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rentalHandler handles HTTP requests for the rental engine.
type rentalHandler struct {
	rentalService portssvc.RentalSvcFacade
}

func newRentalHandler(rs portssvc.RentalSvcFacade) *rentalHandler {
	return &rentalHandler{rentalService: rs}
}

// registerRentalRoutes registers all rental-related routes.
func registerRentalRoutes(rg *gin.RouterGroup, rentalService portssvc.RentalSvcFacade) {
	h := newRentalHandler(rentalService)

	rentals := rg.Group("/rentals")
	{
		rentals.POST("", h.createRental)
		rentals.GET("/my", h.listMyRentals)
		rentals.GET("/eligibility", h.checkEligibility)
		rentals.GET("/can-rent/:vehicleID", h.canRentVehicle)
		rentals.GET("", middleware.RequireStaff(), h.listRentals)
		rentals.GET("/active", middleware.RequireStaff(), h.listActiveRentals)
		rentals.GET("/:id", h.getRental)
		rentals.POST("/:id/cancel", h.cancelRental)
		rentals.POST("/:id/complete", middleware.RequireStaff(), h.completeRental)
	}
}

// createRental godoc
// @Summary Rent a vehicle
// @Description Books a vehicle for the caller until the given return date. The total price is computed server-side.
// @Tags rentals
// @Accept json
// @Produce json
// @Param rental body dto.CreateRentalRequest true "Booking request"
// @Success 201 {object} dto.RentalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Booking rejected by a business rule"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals [post]
func (h *rentalHandler) createRental(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result := h.rentalService.CreateRental(c.Request.Context(), userID, req.VehicleID, req.ReturnDate)
	switch result.Outcome {
	case domain.RentalOK:
		c.JSON(http.StatusCreated, dto.ToRentalResponse(result.Rental))
	case domain.RentalRejected:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: result.Message})
	default:
		logger.Error("rental creation failed", slog.String("error", result.Err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: result.Message})
	}
}

// listMyRentals godoc
// @Summary List the caller's rentals
// @Tags rentals
// @Produce json
// @Success 200 {object} dto.ListRentalsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/my [get]
func (h *rentalHandler) listMyRentals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rentals, err := h.rentalService.ListUserRentals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list rentals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRentalsResponse(rentals))
}

// checkEligibility godoc
// @Summary Check whether the caller may rent
// @Description Runs the blacklist and one-active-rental checks without booking anything.
// @Tags rentals
// @Produce json
// @Success 200 {object} dto.EligibilityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/eligibility [get]
func (h *rentalHandler) checkEligibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	canRent, message, err := h.rentalService.CheckEligibility(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to check eligibility")
		return
	}
	c.JSON(http.StatusOK, dto.EligibilityResponse{CanRent: canRent, Message: message})
}

// canRentVehicle godoc
// @Summary Check whether the caller may rent a specific vehicle
// @Tags rentals
// @Produce json
// @Param vehicleID path string true "Vehicle ID"
// @Success 200 {object} dto.EligibilityResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/can-rent/{vehicleID} [get]
func (h *rentalHandler) canRentVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	canRent, err := h.rentalService.CanUserRentVehicle(c.Request.Context(), userID, c.Param("vehicleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to check vehicle eligibility")
		return
	}
	c.JSON(http.StatusOK, dto.EligibilityResponse{CanRent: canRent})
}

// listRentals godoc
// @Summary List all rentals
// @Description Staff view of the full rental ledger.
// @Tags rentals
// @Produce json
// @Success 200 {object} dto.ListRentalsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals [get]
func (h *rentalHandler) listRentals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rentals, err := h.rentalService.ListRentals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list rentals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRentalsResponse(rentals))
}

// listActiveRentals godoc
// @Summary List rentals currently holding a vehicle
// @Tags rentals
// @Produce json
// @Success 200 {object} dto.ListRentalsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/active [get]
func (h *rentalHandler) listActiveRentals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rentals, err := h.rentalService.ListActiveRentals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list active rentals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRentalsResponse(rentals))
}

// getRental godoc
// @Summary Get a rental by ID
// @Description Retrieves a rental. Customers may only read their own rentals.
// @Tags rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} dto.RentalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/{id} [get]
func (h *rentalHandler) getRental(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rental, err := h.rentalService.GetRentalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Rental not found")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)
	if rental.UserID != userID && !role.IsStaff() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRentalResponse(rental))
}

// cancelRental godoc
// @Summary Cancel a rental
// @Description Cancels an active rental and releases the vehicle. Customers may only cancel their own rentals.
// @Tags rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Rental not found, not active, or not owned by the caller"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/{id}/cancel [post]
func (h *rentalHandler) cancelRental(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	cancelled, err := h.rentalService.CancelRental(c.Request.Context(), c.Param("id"), userID, role.IsStaff())
	if err != nil {
		respondError(c, logger, err, "Failed to cancel rental")
		return
	}
	if !cancelled {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Rental not found or not active"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rental cancelled"})
}

// completeRental godoc
// @Summary Complete a rental
// @Description Marks a rental returned and releases the vehicle. Staff only.
// @Tags rentals
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Rental not found or not active"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rentals/{id}/complete [post]
func (h *rentalHandler) completeRental(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	staffID, _ := middleware.GetUserIDFromContext(c)
	completed, err := h.rentalService.CompleteRental(c.Request.Context(), c.Param("id"), staffID)
	if err != nil {
		respondError(c, logger, err, "Failed to complete rental")
		return
	}
	if !completed {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Rental not found or not active"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rental completed"})
}
