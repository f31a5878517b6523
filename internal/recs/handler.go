package recs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinewise-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendation service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
	rg.GET("/locations", h.listLocations)
	rg.GET("/cuisines", h.listCuisines)
}

func (h *Handler) recommend(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be valid JSON", nil)
		return
	}

	result, err := h.Svc.Recommend(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRequest):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute recommendations", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, BuildResponse(result))
}

func (h *Handler) listLocations(c *gin.Context) {
	locations, err := h.Svc.Locations(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list locations", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"locations": locations})
}

func (h *Handler) listCuisines(c *gin.Context) {
	cuisines, err := h.Svc.Cuisines(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cuisines", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"cuisines": cuisines})
}
