package api

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"RecoveryDesk/internal/logger"
)

// Route prefixes proxied by the gateway to the per-feature services.
var gatewayRoutes = map[string]string{
	"/records":        "http://localhost:5143",
	"/upload-history": "http://localhost:5143",
	"/ingest":         "http://localhost:6143",
	"/dash":           "http://localhost:4143",
}

// GatewayService is the single public entry point; it fans requests out to
// the internal service ports.
type GatewayService struct {
	name string
}

func NewGatewayService() *GatewayService {
	return &GatewayService{name: "gateway"}
}

func (s *GatewayService) Name() string { return s.name }

func (s *GatewayService) Start() error {
	go StartGateway()
	return nil
}

func (s *GatewayService) Stop() error { return nil }

func newProxy(target string) *httputil.ReverseProxy {
	u, _ := url.Parse(target)
	return httputil.NewSingleHostReverseProxy(u)
}

// StartGateway serves the reverse proxy and blocks.
func StartGateway() {
	proxies := make(map[string]*httputil.ReverseProxy, len(gatewayRoutes))
	for prefix, target := range gatewayRoutes {
		proxies[prefix] = newProxy(target)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithResult(w, true, "")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		for prefix, proxy := range proxies {
			if r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/") {
				if logger.GlobalLogger != nil {
					logger.GlobalLogger.LogAudit(r.Method + " " + r.URL.Path)
				}
				proxy.ServeHTTP(w, r)
				return
			}
		}
		RespondWithError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})

	LogInfo("gateway listening on :8081")
	if err := http.ListenAndServe(":8081", mux); err != nil {
		LogError("gateway: %v", err)
	}
}
