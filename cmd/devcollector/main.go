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

	"github.com/gorilla/mux"

	"github.com/LafreniereJ/Resource-Capital-sub003/pkg/devcollector"
)

const (
	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 10 * time.Second
	shutdownTimeout    = 30 * time.Second
)

func main() {
	port := os.Getenv("OBS_COLLECTOR_PORT")
	if port == "" {
		port = "8080"
	}

	hub := devcollector.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()
	log.Println("📡 Live-tail hub started")

	router := mux.NewRouter()
	devcollector.NewHandler(hub).Routes(router)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	go func() {
		log.Printf("🌐 Dev collector listening on http://localhost:%s", port)
		log.Println("📡 API endpoints:")
		log.Println("   POST /v1/events  - Ingest analytics events")
		log.Println("   POST /v1/errors  - Ingest error captures")
		log.Println("   GET  /v1/stream  - WebSocket live tail")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Collector failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutdown signal received...")
	cancel() // stops hub.Run()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Collector shutdown warning: %v", err)
	}

	wg.Wait()
	log.Println("✅ Dev collector stopped")
}
