package proxy

import (
	"net/http"
)

// HealthCheck answers liveness probes. It never touches the gate or the backend.
func (p *Proxy) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
