package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/drinktab/drinktab/internal/config"
	"github.com/drinktab/drinktab/internal/pkg/identity"
	"github.com/drinktab/drinktab/internal/server/http/handlers"
	"github.com/drinktab/drinktab/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
//
// The drink routes stay outside the auth gate on purpose: the bar
// terminal posts a prepaid key without a login, and the engine decides
// whether the key or the principal is enough.
func Setup(facade handlers.LedgerFacade, health handlers.HealthChecker, resolver identity.Resolver, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.Authenticate(resolver))

	accountHandler := handlers.NewAccountHandler(facade, cfg.LoginURL)
	drinkHandler := handlers.NewDrinkHandler(facade, cfg.LoginURL)
	adminHandler := handlers.NewAdminHandler(facade, facade, cfg.LoginURL)
	catalogHandler := handlers.NewCatalogHandler(facade, cfg.LoginURL)
	statusHandler := handlers.NewStatusHandler(health)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "drinktab"})
	})
	engine.GET("/ping", statusHandler.Ping)

	engine.POST("/drink", drinkHandler.Buy)
	engine.POST("/revert_last_drink", drinkHandler.Revert)
	engine.POST("/tag_last_drink", drinkHandler.Tag)

	authed := engine.Group("")
	authed.Use(middleware.RequireAuth(cfg.LoginURL))
	authed.GET("/me", accountHandler.Me)
	authed.GET("/my_prepaid_users", accountHandler.MyPrepaidUsers)
	authed.POST("/add_prepaid_user", accountHandler.AddPrepaidUser)
	authed.POST("/add_money_prepaid_user", accountHandler.AddMoney)
	authed.GET("/drink_types", catalogHandler.List)
	authed.POST("/add_drink_type", catalogHandler.Add)
	authed.POST("/set_drink_type_quantity", catalogHandler.SetQuantity)
	authed.POST("/payup", adminHandler.PayUp)
	authed.POST("/set_money_postpaid", adminHandler.SetMoneyPostpaid)
	authed.POST("/set_money_prepaid", adminHandler.SetMoneyPrepaid)
	authed.POST("/toggle_activated_user_postpaid", adminHandler.TogglePostpaid)
	authed.POST("/toggle_activated_user_prepaid", adminHandler.TogglePrepaid)
	authed.POST("/del_prepaid_user", adminHandler.Delete)
	authed.GET("/stats", adminHandler.Stats)

	return engine
}
