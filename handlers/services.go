package handlers

import (
	"net/http"

	"zela/models"
	"zela/services/catalog"

	"github.com/gin-gonic/gin"
)

// ServiceHandler exposes the read-only service catalog.
type ServiceHandler struct {
	Catalog catalog.Catalog
}

func NewServiceHandler(cat catalog.Catalog) *ServiceHandler {
	return &ServiceHandler{Catalog: cat}
}

// ListServices returns all active services.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": h.Catalog.ListDefinitions()})
}

// GetService returns one service definition with its wizard flow.
func (h *ServiceHandler) GetService(c *gin.Context) {
	def, err := h.Catalog.GetDefinition(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": def})
}

// GetTypologies returns the property typologies used as pricing keys.
func (h *ServiceHandler) GetTypologies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"typologies": models.KnownTypologies})
}
