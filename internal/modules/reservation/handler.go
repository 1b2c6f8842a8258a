package reservation

import (
	"net/http"
	"strconv"

	"eventrent/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations/:id", h.Get)
	rg.POST("/reservations/:id/cancel-request", h.RequestCancel)
	rg.POST("/reservations/:id/change-request", h.RequestChange)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.List)
	rg.POST("/reservations/:id/adjust", h.AdjustItems)
	rg.POST("/reservations/:id/resolve", h.ResolveRequest)
	rg.POST("/reservations/:id/cancel", h.Cancel)
	rg.POST("/reservations/:id/complete", h.Complete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": created})
}

func (h *Handler) Get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": found})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": items, "limit": limit, "offset": offset})
}

func (h *Handler) AdjustItems(c *gin.Context) {
	var req AdjustItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.AdjustItems(c.Request.Context(), c.Param("id"), req.items(), req.Note)
	if err != nil {
		h.writeError(c, err, "Failed to adjust reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": updated})
}

func (h *Handler) RequestCancel(c *gin.Context) {
	var req NoteRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.service.RequestCancel(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		h.writeError(c, err, "Failed to request cancellation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": updated})
}

func (h *Handler) RequestChange(c *gin.Context) {
	var req NoteRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.service.RequestChange(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		h.writeError(c, err, "Failed to request a change")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": updated})
}

func (h *Handler) ResolveRequest(c *gin.Context) {
	var req ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	updated, err := h.service.ResolveRequest(c.Request.Context(), c.Param("id"), *req.Approve, req.Note)
	if err != nil {
		h.writeError(c, err, "Failed to resolve request")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": updated})
}

func (h *Handler) Cancel(c *gin.Context) {
	var req NoteRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := h.service.Cancel(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": updated})
}

func (h *Handler) Complete(c *gin.Context) {
	updated, err := h.service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to complete reservation")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": updated})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data")
	case ErrUnknownPack:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown pack")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case ErrSlotTaken:
		response.Error(c, http.StatusConflict, "TIME_SLOT_TAKEN", "The requested time slot is already taken")
	case ErrInvalidState:
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Operation not allowed in the current state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
