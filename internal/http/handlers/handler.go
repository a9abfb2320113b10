package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	"github.com/JoTroup/woocommerce-default-ordering/internal/http/middleware"
	"github.com/JoTroup/woocommerce-default-ordering/internal/repositories"
	"github.com/JoTroup/woocommerce-default-ordering/internal/services"
)

// Handler holds what the endpoints share across requests.
type Handler struct {
	Env    intconfig.Env
	Logger *zap.Logger
	DB     *sql.DB
}

func (h Handler) logger(c *gin.Context) *zap.Logger {
	l := h.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("request_id", middleware.GetRequestID(c)))
}

func (h Handler) orderListService(c *gin.Context) services.OrderListService {
	return services.OrderListService{
		Settings:  repositories.SettingsRepository{DB: h.DB},
		Statuses:  repositories.StatusRepository{DB: h.DB},
		Orders:    repositories.OrderRepository{DB: h.DB},
		Logger:    h.logger(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handler) settingsService(c *gin.Context) services.SettingsService {
	return services.SettingsService{
		Settings:  repositories.SettingsRepository{DB: h.DB},
		Statuses:  repositories.StatusRepository{DB: h.DB},
		Logger:    h.logger(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handler) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{DB: h.DB},
		Secret:    []byte(h.Env.JWTSecret),
		TTL:       h.Env.JWTTTL,
		Logger:    h.logger(c),
		RequestID: middleware.GetRequestID(c),
	}
}
