package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// Run serves until ctx is cancelled, then shuts down gracefully. It returns
// nil after a clean shutdown.
func (srv *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", srv.port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", srv.port, err)
	}
	return srv.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (srv *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           srv.gin,
		ReadHeaderTimeout: srv.readHeaderTimeout,
		ReadTimeout:       srv.readTimeout,
		WriteTimeout:      srv.writeTimeout,
		IdleTimeout:       srv.idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if srv.tlsCertFile != "" {
			srv.l.Infof(ctx, "HTTPS server listening on %s", ln.Addr())
			errCh <- httpSrv.ServeTLS(ln, srv.tlsCertFile, srv.tlsKeyFile)
			return
		}
		srv.l.Infof(ctx, "HTTP server listening on %s", ln.Addr())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := srv.shutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	srv.l.Infof(context.Background(), "Shutting down HTTP server (timeout %s)", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
