package hold

import (
	"net/http"

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
	rg.POST("/holds", h.CreateHold)
	rg.GET("/holds/:id", h.GetHold)
	rg.PATCH("/holds/:id/consume", h.ConsumeHold)
}

func (h *Handler) CreateHold(c *gin.Context) {
	var req CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.CreateHold(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid hold interval")
		case ErrUnknownPack:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown pack")
		case ErrSlotTaken:
			response.Error(c, http.StatusConflict, "TIME_SLOT_TAKEN", "The requested time slot is already taken")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create hold")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"hold_id":    created.ID,
		"expires_at": created.ExpiresAt,
	})
}

func (h *Handler) GetHold(c *gin.Context) {
	found, err := h.service.GetHold(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hold not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load hold")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hold": found})
}

func (h *Handler) ConsumeHold(c *gin.Context) {
	var req ConsumeHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	consumed, ok, err := h.service.ConsumeHold(c.Request.Context(), c.Param("id"), req.ReservationID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Hold not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to consume hold")
		return
	}

	// Non-fatal when the hold already lapsed; the reservation stays valid.
	response.Success(c, http.StatusOK, gin.H{
		"hold_id":        consumed.ID,
		"reservation_id": req.ReservationID,
		"consumed":       ok,
	})
}
