package http

import (
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
	"eventhub/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Event    *controllers.EventController
	Realtime *controllers.RealtimeController
	Health   *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/register", c.Auth.Register)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/probe", requireAuth(c.Auth.Probe))

	// Events
	mux.HandleFunc("POST /events", requireAuth(c.Event.Create))
	mux.HandleFunc("GET /events", c.Event.ListAll)
	mux.HandleFunc("GET /events/mine", requireAuth(c.Event.ListMine))
	mux.HandleFunc("GET /events/attending", requireAuth(c.Event.ListAttending))
	mux.HandleFunc("GET /events/{id}", c.Event.GetByID)
	mux.HandleFunc("DELETE /events/{id}", requireAuth(c.Event.Delete))
	mux.HandleFunc("GET /events/{id}/attend", requireAuth(c.Event.Attend))
	mux.HandleFunc("DELETE /events/{id}/attend", requireAuth(c.Event.Leave))

	// Realtime
	mux.HandleFunc("GET /ws", c.Realtime.ServeWS)

	// Ops
	mux.HandleFunc("GET /healthz", c.Health.Healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with metrics, request logging and CORS.
func NewHandler(mux *http.ServeMux, logger *slog.Logger, allowedOrigins []string) http.Handler {
	var h http.Handler = mux
	h = metrics.HTTPMiddleware(h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.CORS(allowedOrigins, h)
}
