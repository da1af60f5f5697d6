package handlers

import (
	"errors"
	"net/http"

	"reservio/models"
	"reservio/services/booking"
	"reservio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling core over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusForCode translates service error codes to HTTP statuses. Everything
// unrecognized is a 500.
func statusForCode(code string) int {
	switch code {
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict, booking.CodeBatchExhausted, booking.CodeAlreadyCancelled:
		return http.StatusConflict
	case booking.CodePermissionDenied:
		return http.StatusForbidden
	case booking.CodeResourceUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, err error) {
	var be *booking.BookingError
	if errors.As(err, &be) {
		body := gin.H{"error": be.Message, "code": be.Code}
		if be.ExistingID != "" {
			body["existing_booking_id"] = be.ExistingID
		}
		c.JSON(statusForCode(be.Code), body)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
}

// CreateBooking handles single and recurring booking submissions. The
// requester is taken from the authenticated session.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.UserID = c.GetString("userID")

	result, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result.Single != nil {
		c.JSON(http.StatusCreated, result.Single)
		return
	}
	h.Logger.Info("recurring booking created",
		zap.Int("created", result.Recurring.Created),
		zap.Int("skipped", result.Recurring.Skipped))
	c.JSON(http.StatusCreated, result.Recurring)
}

// CancelBooking cancels a booking on behalf of the session user.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	actorID := c.GetString("userID")

	b, err := h.Service.CancelBooking(c.Request.Context(), bookingID, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatus applies an approval, denial or completion transition.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID := c.Param("id")
	actorID := c.GetString("userID")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Service.UpdateBookingStatus(c.Request.Context(), bookingID, input.Status, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking is the separately authorized administrative removal.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID := c.Param("id")
	actorID := c.GetString("userID")

	if err := h.Service.DeleteBooking(c.Request.Context(), bookingID, actorID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": bookingID})
}

// GetBooking returns a single booking by ID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookings returns the session user's booking history.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ResourceDaySheet returns all bookings for a resource on one date.
func (h *BookingHandler) ResourceDaySheet(c *gin.Context) {
	resourceID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	bookings, err := h.Service.ListResourceDay(c.Request.Context(), resourceID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
