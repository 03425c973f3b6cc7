package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/gin-gonic/gin"

	"crosswarped.com/ladder/internal/api"
	"crosswarped.com/ladder/internal/config"
)

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}

func withCORS(next http.Handler) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle OPTIONS request for CORS preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func main() {
	// The function is configured from the environment: LADDER_DICTIONARY, LADDER_COMMON_WORDS,
	// LADDER_STORE_PATH, LADDER_SEED and PORT.
	cfg, err := config.Load(os.Getenv("LADDER_CONFIG"))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	gin.SetMode(gin.ReleaseMode)

	svc, err := api.NewService(cfg)
	if err != nil {
		log.Fatalf("api.NewService: %v\n", err)
	}
	defer svc.Close()
	svc.LoadAsync(context.Background())

	funcframework.RegisterHTTPFunction("/v1/", withCORS(svc.Router()))
	funcframework.RegisterHTTPFunction("/metrics", svc.Router().ServeHTTP)

	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
