// Command devproxy forwards /api/* to the backend during local development,
// adding permissive CORS headers so the browser front end can call it from a
// different origin. Request metrics are exposed on /metrics.
//
// Environment variables:
//
//	DEVPROXY_ADDR:     listen address (default :8010)
//	DEVPROXY_UPSTREAM: backend base URL (default http://localhost:5000)
package main

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/krushnaz/teachove-fees/internal/middleware"
	"github.com/krushnaz/teachove-fees/pkg/logging"
)

var (
	proxiedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devproxy_requests_total",
		Help: "Requests forwarded to the upstream backend.",
	}, []string{"method", "code"})

	proxyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devproxy_request_duration_seconds",
		Help:    "Upstream round-trip latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using environment")
	}
	logging.Setup()

	addr := getEnv("DEVPROXY_ADDR", ":8010")
	upstream := getEnv("DEVPROXY_UPSTREAM", "http://localhost:5000")

	target, err := url.Parse(upstream)
	if err != nil {
		slog.Error("Invalid upstream URL", "upstream", upstream, "error", err)
		os.Exit(1)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		slog.Error("Upstream unreachable", "path", r.URL.Path, "error", err)
		proxiedRequests.WithLabelValues(r.Method, "502").Inc()
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		timer := prometheus.NewTimer(proxyDuration.WithLabelValues(r.Method))
		defer timer.ObserveDuration()

		rec := &codeRecorder{ResponseWriter: w, code: http.StatusOK}
		proxy.ServeHTTP(rec, r)
		proxiedRequests.WithLabelValues(r.Method, strconv.Itoa(rec.code)).Inc()
	})

	handler := middleware.Logging(middleware.CORS(mux))

	// h2c so gRPC-style and HTTP/2 clients work without TLS in dev.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Dev proxy starting", "address", addr, "upstream", upstream)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Proxy failed", "error", err)
		os.Exit(1)
	}
}

type codeRecorder struct {
	http.ResponseWriter
	code int
}

func (r *codeRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}
