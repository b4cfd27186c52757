package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchbook/internal/domain/booking"
	reqdto "pitchbook/internal/handler/dto/request"
	resdto "pitchbook/internal/handler/dto/response"
	"pitchbook/internal/handler/middleware"
	"pitchbook/internal/usecase/commands"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
)

const defaultBookingListLimit = 50

type BookingHandler struct {
	commands *commands.BookingCommandService
	queries  *queries.BookingQueryService
}

func NewBookingHandler(cmd *commands.BookingCommandService, q *queries.BookingQueryService) *BookingHandler {
	return &BookingHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary Create booking
// @Description Create a pending booking for a pitch offering and date
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking date format, expected YYYY-MM-DD",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid idempotency key format",
		})
		return
	}

	result, err := h.commands.CreateBooking(c.Request.Context(), commands.CreateBookingInput{
		Actor:          actor,
		PitchID:        req.PitchID,
		OfferingID:     req.OfferingID,
		Date:           date,
		VoucherCode:    req.VoucherCode,
		Note:           req.Note,
		IdempotencyKey: idempotencyKey,
		RequestHash:    req.Hash(),
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	view, err := h.queries.GetByIDSystem(c.Request.Context(), result.BookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	c.JSON(status, resdto.CreateBookingResponse{
		Booking:        view,
		VoucherWarning: result.VoucherWarning,
	})
}

func (h *BookingHandler) writeCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrPitchNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Pitch not found",
		})
	case errors.Is(err, commands.ErrOfferingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Offering not found",
		})
	case errors.Is(err, commands.ErrOfferingMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Offering does not belong to the pitch",
		})
	case errors.Is(err, commands.ErrPitchUnavailable),
		errors.Is(err, commands.ErrOfferingUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Pitch or slot is not open for booking",
		})
	case errors.Is(err, commands.ErrInvalidBookingDate),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrTooFarAhead):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Booking date is out of the allowed window",
		})
	case errors.Is(err, commands.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot already booked for this date",
		})
	case errors.Is(err, commands.ErrIdempotencyReused):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Idempotency key reused with different parameters",
		})
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking request is currently being processed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Get booking
// @Description Get booking by ID (owner or admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to view this booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List own bookings
// @Description List the current user's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.BookingListItem
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.queries.ListByUser(c.Request.Context(), actor.ID, defaultBookingListLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Confirm booking
// @Description Confirm a pending booking (admin only); redeems the voucher
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.commands.Confirm)
}

// @Summary Reject booking
// @Description Reject a pending booking (admin only)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	h.transition(c, h.commands.Reject)
}

// @Summary Cancel booking
// @Description Cancel a pending booking (owner or admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.commands.Cancel)
}

type transitionFunc func(ctx context.Context, actor shared.Actor, id uuid.UUID) error

func (h *BookingHandler) transition(c *gin.Context, fn transitionFunc) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to modify this booking",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is not pending",
			})
		case errors.Is(err, commands.ErrVoucherExhausted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Voucher usage limit reached",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.queries.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) actorAndID(c *gin.Context) (shared.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return shared.Actor{}, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return shared.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}

// The key is optional; bookings without one simply skip replay protection.
func getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return nil, nil
	}
	key, err := uuid.Parse(keyStr)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
