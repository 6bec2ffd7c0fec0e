package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drinktab/drinktab/internal/server/http/dto"
)

// DrinkHandler serves the point-of-sale drink flow. These routes stay
// outside the auth gate: a prepaid key is a credential of its own, and
// the engine decides whether key, principal, or neither is enough.
type DrinkHandler struct {
	facade   DrinkFacade
	loginURL string
}

func NewDrinkHandler(facade DrinkFacade, loginURL string) *DrinkHandler {
	return &DrinkHandler{facade: facade, loginURL: loginURL}
}

// Buy handles POST /drink.
func (h *DrinkHandler) Buy(c *gin.Context) {
	var req dto.DrinkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	receipt, err := h.facade.BuyDrink(c.Request.Context(), CurrentPrincipal(c), targetSelector(req.UserKey, req.Kind))
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// Revert handles POST /revert_last_drink.
func (h *DrinkHandler) Revert(c *gin.Context) {
	var req dto.DrinkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	receipt, err := h.facade.RevertLastDrink(c.Request.Context(), CurrentPrincipal(c), targetSelector(req.UserKey, req.Kind))
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// Tag handles POST /tag_last_drink.
func (h *DrinkHandler) Tag(c *gin.Context) {
	var req dto.TagDrinkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.DrinkTypeID == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	err := h.facade.TagLastDrink(c.Request.Context(), CurrentPrincipal(c), targetSelector(req.UserKey, req.Kind), req.DrinkTypeID)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.Status(http.StatusOK)
}
