package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/performance/internal/api"
	"example.com/performance/internal/auth"
	"example.com/performance/internal/catalog"
	"example.com/performance/internal/config"
	"example.com/performance/internal/domain"
	"example.com/performance/internal/metric"
	httptransport "example.com/performance/internal/transport/http"
	"example.com/performance/internal/zones"
)

func main() {
	cfg := config.Load()

	registry, evaluator := buildEngine(cfg)
	handler := api.NewHandler(registry, evaluator)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}
	go func() {
		log.Printf("performance-service metrics listening on %s", cfg.MetricsAddress)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	middleware := auth.NewMiddleware(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})

	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: 2 * cfg.HTTPTimeout,
		IdleTimeout:  60 * time.Second,
	}, logger(middleware.Wrap(mux)))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("performance-service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Printf("metrics shutdown error: %v", err)
	}
}

func buildEngine(cfg config.Config) (*metric.Registry, *metric.Evaluator) {
	store := zones.NewStore()
	seedZones(store, cfg)

	registry := metric.NewRegistry()
	if err := catalog.Register(registry, store); err != nil {
		log.Fatalf("registering metric catalog: %v", err)
	}
	evaluator, err := metric.NewEvaluator(registry)
	if err != nil {
		log.Fatalf("resolving metric plan: %v", err)
	}
	return registry, evaluator
}

func seedZones(store *zones.Store, cfg config.Config) {
	seeds := map[domain.Discipline]float64{
		domain.DisciplineSwim: cfg.SwimThresholdSpeed,
		domain.DisciplineRun:  cfg.RunThresholdSpeed,
		domain.DisciplineBike: cfg.BikeThresholdSpeed,
	}
	for discipline, speed := range seeds {
		if speed > 0 {
			store.Add(discipline, zones.Range{Speed: speed})
		}
	}
}
