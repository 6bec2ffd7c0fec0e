package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drinktab/drinktab/internal/server/http/dto"
)

// AccountHandler serves the profile and prepaid-family endpoints.
type AccountHandler struct {
	facade   AccountFacade
	loginURL string
}

func NewAccountHandler(facade AccountFacade, loginURL string) *AccountHandler {
	return &AccountHandler{facade: facade, loginURL: loginURL}
}

// Me handles GET /me.
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toPostpaidResponse(user))
}

// MyPrepaidUsers handles GET /my_prepaid_users.
func (h *AccountHandler) MyPrepaidUsers(c *gin.Context) {
	users, err := h.facade.MyPrepaidUsers(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	out := make([]dto.PrepaidUserResponse, 0, len(users))
	for i := range users {
		out = append(out, toPrepaidResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// AddPrepaidUser handles POST /add_prepaid_user.
func (h *AccountHandler) AddPrepaidUser(c *gin.Context) {
	var req dto.AddPrepaidUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var startMoney int64
	if req.StartMoney != "" {
		cents, ok := parseAmount(c, req.StartMoney)
		if !ok {
			return
		}
		startMoney = cents
	}

	user, err := h.facade.AddPrepaidUser(c.Request.Context(), CurrentPrincipal(c), req.Username, startMoney)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toPrepaidResponse(user))
}

// AddMoney handles POST /add_money_prepaid_user.
func (h *AccountHandler) AddMoney(c *gin.Context) {
	var req dto.AddMoneyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Amount == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	user, err := h.facade.AddMoneyPrepaid(c.Request.Context(), CurrentPrincipal(c), req.Username, amount)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toPrepaidResponse(user))
}
