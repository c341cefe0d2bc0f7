package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wordduel/wordduel/internal/hub"
	"github.com/wordduel/wordduel/internal/ws"
)

// SetupRoutes builds the router with the hub injected.
func SetupRoutes(h *hub.Hub, idleTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, idleTimeout))
	return r
}
