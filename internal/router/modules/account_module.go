package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/accountkit/account-service/internal/container"
	handlers "github.com/accountkit/account-service/internal/interface/http"
	"github.com/accountkit/account-service/internal/interface/middleware"
	"github.com/accountkit/account-service/pkg/helpers"
)

// AccountModule wires account CRUD routes and the bearer-token gate.
// Public: POST /user/create
// Protected: GET /user/profile/:id, PUT /user/:id, DELETE /user/:id
type AccountModule struct {
	Handler *handlers.AccountHandler
	JWT     *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/user/create", createLimiter, m.Handler.Create)

	// Protected
	auth := rg.Group("/user")
	auth.Use(middleware.BearerAuth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile/:id", m.Handler.GetProfile)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Remove)
	}
}
