package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "designmarket/docs"
	"designmarket/ledger"
	"designmarket/middleware"
	"designmarket/router/api"
)

// New builds the engine with all routes; split from Run so tests can drive it
// through httptest.
func New(l *ledger.Ledger) *gin.Engine {
	api.Init(l)
	r := gin.New()
	// Allow cross-domain access, and those with nginx and other proxies can be closed
	r.Use(middleware.Cors())
	api.Design(r)
	api.Market(r)
	api.Transaction(r)
	api.Admin(r)
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func Run(addr string, l *ledger.Ledger) error {
	return New(l).Run(addr)
}
