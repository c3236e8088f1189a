package api

import (
	"errors"
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ItemRequestHandler struct {
	requestUseCase usecase.RequestUseCase
	paging         config.PagingConfig
}

func NewItemRequestHandler(requestUseCase usecase.RequestUseCase, cfg config.Config) *ItemRequestHandler {
	return &ItemRequestHandler{
		requestUseCase: requestUseCase,
		paging:         cfg.Paging,
	}
}

// @Summary Create item request
// @Description Post a request for an item that is not yet listed
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester ID"
// @Param request body reqdto.CreateItemRequestRequest true "Request body"
// @Success 201 {object} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [post]
func (h *ItemRequestHandler) CreateRequest(c *gin.Context) {
	requesterID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateItemRequestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.requestUseCase.Create(c.Request.Context(), requesterID, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRequestView(view))
}

// @Summary List own item requests
// @Description List the caller's requests with items offered against them
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester ID"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 404 {object} map[string]string
// @Router /requests [get]
func (h *ItemRequestHandler) ListOwnRequests(c *gin.Context) {
	requesterID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.requestUseCase.ListOwn(c.Request.Context(), requesterID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary List other users' requests
// @Description Page through requests posted by other users, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Viewer ID"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/all [get]
func (h *ItemRequestHandler) ListOtherRequests(c *gin.Context) {
	viewerID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	from, size := parsePaging(c, h.paging)

	views, err := h.requestUseCase.ListOthers(c.Request.Context(), viewerID, from, size)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary Get item request
// @Description Get a request by ID with items offered against it
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Viewer ID"
// @Param id path int true "Request ID"
// @Success 200 {object} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (h *ItemRequestHandler) GetRequest(c *gin.Context) {
	viewerID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	view, err := h.requestUseCase.GetByID(c.Request.Context(), requestID, viewerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Delete item request
// @Description Delete a request (requester only)
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester ID"
// @Param id path int true "Request ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [delete]
func (h *ItemRequestHandler) DeleteRequest(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	requestID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	if err := h.requestUseCase.Delete(c.Request.Context(), requestID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ItemRequestHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
	case errors.Is(err, usecase.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing parameters",
		})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only the requester can delete a request",
		})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, usecase.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Request not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
