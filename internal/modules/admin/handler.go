package admin

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

// RegisterPublicRoutes exposes the token exchange; everything else sits
// behind the admin group.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/token", h.IssueToken)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/packs", h.ListPacks)
	admin.POST("/packs", h.CreatePack)
	admin.POST("/holds/cleanup", h.CleanupHolds)
}

func (h *Handler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	out, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrLoginDisabled:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin login is disabled")
		case ErrInvalidToken:
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid bootstrap token")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		}
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ListPacks(c *gin.Context) {
	packs, err := h.service.ListPacks(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list packs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packs": packs})
}

func (h *Handler) CreatePack(c *gin.Context) {
	var req CreatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.CreatePack(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pack data")
		case ErrDuplicatePack:
			response.Error(c, http.StatusConflict, "DUPLICATE", "Pack key already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create pack")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pack": created})
}

func (h *Handler) CleanupHolds(c *gin.Context) {
	n, err := h.service.CleanupHolds(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clean up holds")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"expired": n})
}
