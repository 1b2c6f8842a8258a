package availability

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
	rg.GET("/availability", h.CheckQuery)
	rg.POST("/availability", h.CheckBody)
}

func (h *Handler) CheckQuery(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability query")
		return
	}
	h.check(c, req)
}

func (h *Handler) CheckBody(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.check(c, req)
}

func (h *Handler) check(c *gin.Context, req CheckRequest) {
	if req.packKey() == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "pack_key is required")
		return
	}
	interval, err := req.interval()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD")
		return
	}

	result, err := h.service.IsAvailable(c.Request.Context(), req.packKey(), interval, "")
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rental interval")
		case ErrUnknownPack:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown pack")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability check failed")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
