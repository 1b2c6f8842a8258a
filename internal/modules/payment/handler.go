package payment

import (
	"net/http"

	"eventrent/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Webhook-Signature"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.HandleWebhook)
}

func (h *Handler) HandleWebhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable request body")
		return
	}

	receipt, err := h.service.HandleWebhook(c.Request.Context(), rawBody, c.GetHeader(SignatureHeader))
	if err != nil {
		switch err {
		case ErrInvalidSignature:
			response.Error(c, http.StatusUnauthorized, "INVALID_SIGNATURE", "Webhook signature verification failed")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid webhook payload")
		case ErrUnknownKind:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown payment kind")
		case ErrReservationNotFound:
			// 404 tells the provider to retry after the reservation lands.
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrInvalidState:
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Payment not applicable in the current state")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment event")
		}
		return
	}
	response.Success(c, http.StatusOK, receipt)
}
