package api

import (
	"database/sql"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	h "github.com/JoTroup/woocommerce-default-ordering/internal/http/handlers"
	"github.com/JoTroup/woocommerce-default-ordering/internal/http/middleware"
)

func NewRouter(env intconfig.Env, logger *zap.Logger, db *sql.DB) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := h.Handler{Env: env, Logger: logger, DB: db}
	requireAuth := middleware.Auth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", hd.Health)
		api.GET("/db-check", hd.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", hd.Login)

		orders := api.Group("/orders", requireAuth)
		orders.GET("", hd.ListOrders)
		orders.GET("/export.pdf", hd.ExportOrdersPDF)

		api.GET("/order-statuses", requireAuth, hd.ListStatuses)

		settings := api.Group("/settings/order-list", requireAuth, middleware.RequireRoles(env.SettingsRole))
		settings.GET("", hd.GetSettings)
		settings.PUT("", hd.UpdateSettings)
		settings.DELETE("", hd.ResetSettings)
		settings.GET("/fields", hd.SettingsFields)
	}

	return r
}
