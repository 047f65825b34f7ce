package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mixaill76/vertex_proxy/internal/config"
	"github.com/mixaill76/vertex_proxy/internal/proxy"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// API routes
const (
	ChatPath       = "/v1/chat"
	StreamChatPath = "/v1/chat/stream"
	MetricsPath    = "/metrics"
)

// New builds the HTTP route table. Health and metrics bypass the API key gate,
// which the proxy applies inside the chat handlers.
func New(p *proxy.Proxy, monitoringConfig *config.MonitoringConfig, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.Use(
		recoveryMiddleware(logger),
		requestIDMiddleware,
		loggingMiddleware(logger, monitoringConfig.HealthCheckPath),
	)

	r.HandleFunc(monitoringConfig.HealthCheckPath, p.HealthCheck).Methods(http.MethodGet, http.MethodHead)

	if monitoringConfig.PrometheusEnabled {
		r.Handle(MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		logger.Info("Prometheus metrics enabled", "path", MetricsPath)
	}

	r.HandleFunc(ChatPath, p.Chat).Methods(http.MethodPost)
	r.HandleFunc(StreamChatPath, p.StreamChat).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		proxy.WriteErrorNotFound(w, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		proxy.WriteErrorMethodNotAllowed(w, "method not allowed")
	})

	return r
}
