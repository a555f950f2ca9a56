package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	authUsecase "cryptnote-backend/internal/auth/usecase"
	noteUsecase "cryptnote-backend/internal/note/usecase"
	"cryptnote-backend/pkg/config"
	"cryptnote-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	noteUsecase noteUsecase.NoteUsecase
	config      *config.Config
	collector   *metrics.Collector
	gatherer    prometheus.Gatherer
}

// NewHandler bundles the usecases served over HTTP. collector and gatherer may be
// nil, in which case no metrics are recorded or exposed.
func NewHandler(authUc authUsecase.AuthUsecase, noteUc noteUsecase.NoteUsecase, cfg *config.Config, collector *metrics.Collector, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		authUsecase: authUc,
		noteUsecase: noteUc,
		config:      cfg,
		collector:   collector,
		gatherer:    gatherer,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())
	if h.collector != nil {
		r.Use(h.collector.Middleware())
	}
	if h.gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(h.gatherer)))
	}

	SetupRoutes(r, h.authUsecase, h.noteUsecase)
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (h *Handler) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, auth-token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
