package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"example.com/performance/internal/catalog"
	"example.com/performance/internal/config"
	"example.com/performance/internal/consumer"
	"example.com/performance/internal/domain"
	"example.com/performance/internal/metric"
	"example.com/performance/internal/zones"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddress, Handler: promhttp.Handler()}
	go func() {
		log.Printf("scoring consumer metrics listening on %s", cfg.MetricsAddress)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	evaluator := buildEvaluator(cfg)
	publisher := consumer.NewKafkaPublisher(cfg.KafkaBrokers)
	defer publisher.Close()
	handler := consumer.NewScoringHandler(evaluator, publisher, cfg.ResultsTopic)
	var wg sync.WaitGroup

	for _, topic := range cfg.ConsumerTopics {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:        cfg.KafkaBrokers,
			GroupID:        cfg.ConsumerGroup,
			Topic:          topic,
			MinBytes:       1e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		})
		proc := consumer.NewProcessor(reader, handler)

		wg.Add(1)
		go func(tp string, r *kafka.Reader) {
			defer wg.Done()
			defer r.Close()
			if err := proc.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("consumer stopped with error (topic=%s): %v", tp, err)
			}
		}(topic, reader)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	log.Println("scoring consumer shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics shutdown error: %v", err)
	}

	wg.Wait()
}

func buildEvaluator(cfg config.Config) *metric.Evaluator {
	store := zones.NewStore()
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

	registry := metric.NewRegistry()
	if err := catalog.Register(registry, store); err != nil {
		log.Fatalf("registering metric catalog: %v", err)
	}
	evaluator, err := metric.NewEvaluator(registry)
	if err != nil {
		log.Fatalf("resolving metric plan: %v", err)
	}
	return evaluator
}
