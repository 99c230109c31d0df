package httpserver

import (
	"context"

	"webhook-receiver/internal/middleware"
	webhookHTTP "webhook-receiver/internal/webhook/delivery/http"
)

// registerWebhookDomain mounts GET and POST /webhook.
func (srv *HTTPServer) registerWebhookDomain(mw middleware.Middleware) {
	h := webhookHTTP.New(srv.l, srv.webhookUC)
	webhookHTTP.RegisterRoutes(srv.gin.Group("/webhook"), h, mw)

	srv.l.Infof(context.Background(), "Webhook routes registered at GET/POST /webhook")
}
