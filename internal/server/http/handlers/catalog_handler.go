package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drinktab/drinktab/internal/server/http/dto"
)

// CatalogHandler serves the drink-type catalog endpoints.
type CatalogHandler struct {
	facade   CatalogFacade
	loginURL string
}

func NewCatalogHandler(facade CatalogFacade, loginURL string) *CatalogHandler {
	return &CatalogHandler{facade: facade, loginURL: loginURL}
}

// List handles GET /drink_types.
func (h *CatalogHandler) List(c *gin.Context) {
	types, err := h.facade.DrinkTypes(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	out := make([]dto.DrinkTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, toDrinkTypeResponse(&types[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Add handles POST /add_drink_type.
func (h *CatalogHandler) Add(c *gin.Context) {
	var req dto.AddDrinkTypeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	drinkType, err := h.facade.AddDrinkType(c.Request.Context(), CurrentPrincipal(c), req.Name, req.Icon, req.Quantity)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toDrinkTypeResponse(drinkType))
}

// SetQuantity handles POST /set_drink_type_quantity.
func (h *CatalogHandler) SetQuantity(c *gin.Context) {
	var req dto.SetDrinkTypeQuantityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.ID == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	drinkType, err := h.facade.SetDrinkTypeQuantity(c.Request.Context(), CurrentPrincipal(c), req.ID, req.Quantity)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toDrinkTypeResponse(drinkType))
}
