package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/pkg/money"
	"github.com/drinktab/drinktab/internal/server/http/dto"
	"github.com/drinktab/drinktab/internal/server/http/middleware"
	"github.com/drinktab/drinktab/internal/usecase"
)

// CurrentPrincipal returns the principal the auth middleware resolved,
// or nil for anonymous requests.
func CurrentPrincipal(c *gin.Context) *model.Principal {
	val, ok := c.Get(middleware.PrincipalContextKey)
	if !ok {
		return nil
	}
	principal, ok := val.(*model.Principal)
	if !ok {
		return nil
	}
	return principal
}

func writeError(c *gin.Context, loginURL string, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		if loginURL != "" {
			c.Redirect(http.StatusSeeOther, loginURL)
			c.Abort()
			return
		}
		c.AbortWithStatus(http.StatusUnauthorized)
	case errors.Is(err, domainErrors.ErrForbidden), errors.Is(err, domainErrors.ErrInactive):
		c.AbortWithStatus(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrNoRecentDrink):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrConflict):
		c.AbortWithStatus(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		c.AbortWithStatus(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrStoreUnavailable):
		c.AbortWithStatus(http.StatusServiceUnavailable)
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// parseAmount converts a decimal money string from the client into
// cents, answering 422 itself when the string does not parse.
func parseAmount(c *gin.Context, raw string) (int64, bool) {
	cents, err := money.ParseAmount(raw)
	if err != nil {
		c.AbortWithStatus(http.StatusUnprocessableEntity)
		return 0, false
	}
	return cents, true
}

func targetSelector(userKey, kind string) usecase.TargetSelector {
	return usecase.TargetSelector{
		UserKey: userKey,
		Kind:    model.UserKind(kind),
	}
}

func toPostpaidResponse(u *model.PostpaidUser) dto.PostpaidUserResponse {
	return dto.PostpaidUserResponse{
		Username:  u.Username,
		Money:     money.FormatCents(u.Money),
		Activated: u.Activated,
		LastDrink: u.LastDrink,
	}
}

func toPrepaidResponse(u *model.PrepaidUser) dto.PrepaidUserResponse {
	return dto.PrepaidUserResponse{
		Username:  u.Username,
		UserKey:   u.UserKey,
		Money:     money.FormatCents(u.Money),
		Activated: u.Activated,
		LastDrink: u.LastDrink,
	}
}

func toDrinkTypeResponse(t *model.DrinkType) dto.DrinkTypeResponse {
	return dto.DrinkTypeResponse{
		ID:       t.ID,
		Name:     t.Name,
		Icon:     t.Icon,
		Quantity: t.Quantity,
		Consumed: t.Consumed,
	}
}

func toReceiptResponse(r *usecase.DrinkReceipt) dto.DrinkReceiptResponse {
	return dto.DrinkReceiptResponse{
		Kind:     string(r.Kind),
		Username: r.Username,
		Money:    money.FormatCents(r.Money),
	}
}
