package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/pkg/money"
	"github.com/drinktab/drinktab/internal/server/http/dto"
)

// AdminHandler serves the settlement and bookkeeping endpoints.
type AdminHandler struct {
	admin    AdminFacade
	catalog  CatalogFacade
	loginURL string
}

func NewAdminHandler(admin AdminFacade, catalog CatalogFacade, loginURL string) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog, loginURL: loginURL}
}

// PayUp handles POST /payup.
func (h *AdminHandler) PayUp(c *gin.Context) {
	var req dto.PayUpRequest
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

	if err := h.admin.PayUp(c.Request.Context(), CurrentPrincipal(c), req.Username, amount); err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.Status(http.StatusOK)
}

// SetMoneyPostpaid handles POST /set_money_postpaid.
func (h *AdminHandler) SetMoneyPostpaid(c *gin.Context) {
	var req dto.SetMoneyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Money == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	cents, ok := parseAmount(c, req.Money)
	if !ok {
		return
	}

	user, err := h.admin.SetMoneyPostpaid(c.Request.Context(), CurrentPrincipal(c), req.Username, cents)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toPostpaidResponse(user))
}

// SetMoneyPrepaid handles POST /set_money_prepaid.
func (h *AdminHandler) SetMoneyPrepaid(c *gin.Context) {
	var req dto.SetMoneyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Money == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	cents, ok := parseAmount(c, req.Money)
	if !ok {
		return
	}

	user, err := h.admin.SetMoneyPrepaid(c.Request.Context(), CurrentPrincipal(c), req.Username, cents)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, toPrepaidResponse(user))
}

// TogglePostpaid handles POST /toggle_activated_user_postpaid.
func (h *AdminHandler) TogglePostpaid(c *gin.Context) {
	h.toggle(c, model.UserKindPostpaid)
}

// TogglePrepaid handles POST /toggle_activated_user_prepaid.
func (h *AdminHandler) TogglePrepaid(c *gin.Context) {
	h.toggle(c, model.UserKindPrepaid)
}

func (h *AdminHandler) toggle(c *gin.Context, kind model.UserKind) {
	var req dto.ToggleActivatedRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	activated, err := h.admin.ToggleActivated(c.Request.Context(), CurrentPrincipal(c), req.Username, kind)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleActivatedResponse{Username: req.Username, Activated: activated})
}

// Delete handles POST /del_prepaid_user.
func (h *AdminHandler) Delete(c *gin.Context) {
	var req dto.DeletePrepaidUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := h.admin.DeletePrepaidUser(c.Request.Context(), CurrentPrincipal(c), req.Username); err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	c.Status(http.StatusOK)
}

// Stats handles GET /stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	actor := CurrentPrincipal(c)

	postpaid, err := h.admin.PostpaidLedger(ctx, actor)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}
	prepaid, err := h.admin.PrepaidLedger(ctx, actor)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}
	drinkTypes, err := h.catalog.DrinkTypes(ctx, actor)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}
	totals, err := h.admin.LedgerTotals(ctx)
	if err != nil {
		writeError(c, h.loginURL, err)
		return
	}

	resp := dto.StatsResponse{
		Postpaid:   make([]dto.PostpaidUserResponse, 0, len(postpaid)),
		Prepaid:    make([]dto.PrepaidUserResponse, 0, len(prepaid)),
		DrinkTypes: make([]dto.DrinkTypeResponse, 0, len(drinkTypes)),
		Totals: dto.LedgerTotalsResponse{
			PostpaidTotal: money.FormatCents(totals.PostpaidTotal),
			PrepaidTotal:  money.FormatCents(totals.PrepaidTotal),
			PostpaidDebt:  money.FormatCents(totals.PostpaidDebt),
			PostpaidCount: totals.PostpaidCount,
			PrepaidCount:  totals.PrepaidCount,
		},
	}
	for i := range postpaid {
		resp.Postpaid = append(resp.Postpaid, toPostpaidResponse(&postpaid[i]))
	}
	for i := range prepaid {
		resp.Prepaid = append(resp.Prepaid, toPrepaidResponse(&prepaid[i]))
	}
	for i := range drinkTypes {
		resp.DrinkTypes = append(resp.DrinkTypes, toDrinkTypeResponse(&drinkTypes[i]))
	}

	c.JSON(http.StatusOK, resp)
}
