package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchbook/internal/usecase/queries"
)

const slotDateLayout = "2006-01-02"

type PitchHandler struct {
	pitches      *queries.PitchQueryService
	availability *queries.AvailabilityQueryService
}

func NewPitchHandler(pitches *queries.PitchQueryService, availability *queries.AvailabilityQueryService) *PitchHandler {
	return &PitchHandler{
		pitches:      pitches,
		availability: availability,
	}
}

// @Summary List pitches
// @Description List all pitches in the catalog
// @Tags pitches
// @Produce json
// @Success 200 {array} queries.PitchView
// @Router /pitches [get]
func (h *PitchHandler) ListPitches(c *gin.Context) {
	views, err := h.pitches.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get pitch
// @Description Get pitch details by ID
// @Tags pitches
// @Produce json
// @Param id path string true "Pitch ID"
// @Success 200 {object} queries.PitchView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pitches/{id} [get]
func (h *PitchHandler) GetPitch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pitch ID format",
		})
		return
	}

	view, err := h.pitches.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPitchNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Pitch not found",
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

// @Summary List pitch slots
// @Description List a pitch's time slots for a date with availability and price
// @Tags pitches
// @Produce json
// @Param id path string true "Pitch ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param only_available query bool false "Return only bookable slots"
// @Success 200 {array} queries.SlotAvailabilityView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /pitches/{id}/slots [get]
func (h *PitchHandler) ListSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pitch ID format",
		})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'date' is required",
		})
		return
	}
	date, err := time.Parse(slotDateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	onlyAvailable := c.Query("only_available") == "true"

	views, err := h.availability.ListSlots(c.Request.Context(), id, date, onlyAvailable)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPastDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Date is in the past",
			})
		case errors.Is(err, queries.ErrPitchNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Pitch not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, views)
}
