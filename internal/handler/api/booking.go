package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
	paging         config.PagingConfig
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase, cfg config.Config) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
		paging:         cfg.Paging,
	}
}

// @Summary Create booking
// @Description Book an item for a future time interval
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker ID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	bookerID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingUseCase.Create(c.Request.Context(), bookerID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking interval",
			})
		case errors.Is(err, usecase.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, usecase.ErrItemUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Item is not available for booking",
			})
		case errors.Is(err, usecase.ErrSelfBooking):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Owner cannot book own item",
			})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, usecase.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Interval overlaps an existing booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Decide booking
// @Description Approve or reject a waiting booking (item owner only)
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Param id path int true "Booking ID"
// @Param approved query bool true "Approve or reject"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	actorID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid approved parameter",
		})
		return
	}

	view, err := h.bookingUseCase.Decide(c.Request.Context(), bookingID, actorID, approved)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the item owner can decide a booking",
			})
		case errors.Is(err, usecase.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking has already been decided",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by ID (booker or item owner only)
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Viewer ID"
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	viewerID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingUseCase.GetByID(c.Request.Context(), bookingID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings by booker
// @Description List the caller's bookings filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker ID"
// @Param state query string false "ALL CURRENT PAST FUTURE WAITING REJECTED" default(ALL)
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookerID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	state := c.DefaultQuery("state", "ALL")
	from, size := parsePaging(c, h.paging)

	views, err := h.bookingUseCase.ListByBooker(c.Request.Context(), bookerID, state, from, size)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary List bookings by owner
// @Description List bookings of the caller's items filtered by state
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Param state query string false "ALL CURRENT PAST FUTURE WAITING REJECTED" default(ALL)
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/owner [get]
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	ownerID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	state := c.DefaultQuery("state", "ALL")
	from, size := parsePaging(c, h.paging)

	views, err := h.bookingUseCase.ListByOwner(c.Request.Context(), ownerID, state, from, size)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing parameters",
		})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
