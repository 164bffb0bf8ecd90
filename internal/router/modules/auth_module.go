package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/accountkit/account-service/internal/container"
	handlers "github.com/accountkit/account-service/internal/interface/http"
	"github.com/accountkit/account-service/internal/interface/middleware"
)

// AuthModule wires the login entry point.
// Public: POST /auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
