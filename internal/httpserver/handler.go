package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"webhook-receiver/internal/middleware"
	"webhook-receiver/internal/model"
)

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.metrics, srv.limiter, srv.maxBodySize)

	if err := srv.registerMiddlewares(mw); err != nil {
		return err
	}
	srv.registerSystemRoutes()
	srv.registerWebhookDomain(mw)

	return nil
}

func (srv *HTTPServer) registerMiddlewares(mw middleware.Middleware) error {
	// Proxy headers are only honoured for configured proxies; nil means the
	// socket peer is the client.
	if err := srv.gin.SetTrustedProxies(srv.trustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	srv.gin.Use(mw.RequestID(), mw.AccessLog(), mw.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
	return nil
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metrics != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))
	}

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}
