package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

const shutdownTimeout = 5 * time.Second

// NewRouter registers the page, its assets, the game socket and the
// service endpoints. The page issues session cookies living for sessionTTL.
func NewRouter(logger *slog.Logger, sessionTTL time.Duration, wsHandler, metricsHandler http.Handler) *httprouter.Router {
	log := logger.With("component", "rest")

	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv any) {
		log.Error("panic while serving request", "path", r.URL.Path, "panic", rcv)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}

	mux.GET("/", indexHandler(log, sessionTTL))
	mux.GET("/assets/app.js", assetHandler("application/javascript; charset=utf-8", appJS))
	mux.GET("/assets/app.css", assetHandler("text/css; charset=utf-8", appCSS))
	mux.GET("/ping", pingHandler)
	mux.Handler(http.MethodGet, "/metrics", metricsHandler)
	mux.Handler(http.MethodGet, "/ws", wsHandler)

	return mux
}

// Start serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
