package handlers

import (
	"errors"
	"strconv"
	"time"

	"librental/internal/adapters/persistence/models"
	"librental/internal/core/domain"
	"librental/internal/core/services"
	"librental/internal/pkg/pagination"
	"librental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// ReservationHandler handles reservation endpoints
type ReservationHandler struct {
	reservationService *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// CreateReservationRequest represents create reservation request
type CreateReservationRequest struct {
	UserID         uint   `json:"user_id"`
	BookExternalID int64  `json:"book_external_id"`
	RentalDays     int    `json:"rental_days"`
	StartDate      string `json:"start_date,omitempty"`
}

// Create creates a new reservation
// @Summary Create reservation
// @Description Reserve a copy of a book for a user (Librarian only)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateReservationRequest true "Reservation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}
	if req.BookExternalID == 0 {
		return response.BadRequest(c, "Book external ID is required")
	}
	if req.RentalDays <= 0 {
		return response.BadRequest(c, "Rental days must be greater than 0")
	}

	// Start date defaults to today
	startDate := time.Now()
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		}
		startDate = parsed
	}

	input := &services.CreateReservationInput{
		UserID:         req.UserID,
		BookExternalID: req.BookExternalID,
		RentalDays:     req.RentalDays,
		StartDate:      startDate,
	}

	reservation, err := h.reservationService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrBookNotAvailable):
			return response.UnprocessableEntity(c, "No copies available to reserve")
		default:
			return response.InternalServerError(c, "Failed to create reservation")
		}
	}

	return response.Created(c, "Reservation created successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}

// ReturnRequest represents return processing request
type ReturnRequest struct {
	ReturnDate string `json:"return_date,omitempty"`
}

// Return processes a book return
// @Summary Return a reserved book
// @Description Process the return of a reserved book and settle late fees (Librarian only)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param body body ReturnRequest true "Return data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reservations/{id}/return [put]
func (h *ReservationHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	// Body is optional; return date defaults to today
	var req ReturnRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	returnDate := time.Now()
	if req.ReturnDate != "" {
		parsed, err := time.Parse(dateLayout, req.ReturnDate)
		if err != nil {
			return response.BadRequest(c, "Invalid return date, expected YYYY-MM-DD")
		}
		returnDate = parsed
	}

	input := &services.ReturnInput{
		ReturnDate: returnDate,
	}

	reservation, err := h.reservationService.Return(c.Context(), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			return response.NotFound(c, "Reservation not found")
		case errors.Is(err, domain.ErrReservationNotActive):
			return response.Conflict(c, "Reservation already returned")
		default:
			return response.InternalServerError(c, "Failed to process return")
		}
	}

	return response.Success(c, "Return processed successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}

// List lists reservations
// @Summary List reservations
// @Description List reservations with optional status filter (Librarian only)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status (ACTIVE, RETURNED, OVERDUE)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		reservations, err := h.reservationService.ListByStatus(c.Context(), status)
		if err != nil {
			return response.InternalServerError(c, "Failed to list reservations")
		}
		return response.Success(c, "Reservations retrieved successfully", toReservationResponses(reservations))
	}

	params := pagination.GetParams(c)

	reservations, total, err := h.reservationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list reservations")
	}

	result := pagination.NewResponse(toReservationResponses(reservations), params, total)

	return response.Success(c, "Reservations retrieved successfully", result)
}

// GetByID gets a reservation by ID
// @Summary Get reservation by ID
// @Description Get a specific reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid reservation ID")
	}

	reservation, err := h.reservationService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return response.NotFound(c, "Reservation not found")
		}
		return response.InternalServerError(c, "Failed to get reservation")
	}

	return response.Success(c, "Reservation retrieved successfully", fiber.Map{
		"reservation": reservation.ToResponse(),
	})
}

// GetMyReservations gets the current user's reservations
// @Summary Get my reservations
// @Description Get current user's reservations
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reservations/my [get]
func (h *ReservationHandler) GetMyReservations(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	reservations, err := h.reservationService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get reservations")
	}

	return response.Success(c, "Reservations retrieved successfully", toReservationResponses(reservations))
}

// GetByUser gets reservations of a specific user
// @Summary Get user's reservations
// @Description Get all reservations of a user (Librarian only)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reservations/user/{user_id} [get]
func (h *ReservationHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	reservations, err := h.reservationService.ListByUser(c.Context(), uint(userID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get reservations")
	}

	return response.Success(c, "Reservations retrieved successfully", toReservationResponses(reservations))
}

// GetOverdue lists reservations past their expected return date
// @Summary List overdue reservations
// @Description List ACTIVE reservations past their expected return date (Librarian only)
// @Tags Reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reservations/overdue [get]
func (h *ReservationHandler) GetOverdue(c *fiber.Ctx) error {
	reservations, err := h.reservationService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue reservations")
	}

	return response.Success(c, "Overdue reservations retrieved successfully", toReservationResponses(reservations))
}

// toReservationResponses converts reservations using ToResponse()
func toReservationResponses(reservations []*models.Reservation) []*models.ReservationResponse {
	result := make([]*models.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, r.ToResponse())
	}
	return result
}
