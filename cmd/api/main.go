package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinic-appointment-crm/clinic-service/internal/auth"
	"github.com/clinic-appointment-crm/clinic-service/internal/db"
	httpx "github.com/clinic-appointment-crm/clinic-service/internal/http"
	"github.com/clinic-appointment-crm/clinic-service/internal/messaging"
	"github.com/clinic-appointment-crm/clinic-service/internal/telemetry"
)

func main() {
	ctx := context.Background()

	telemetryCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, telemetryCfg)
	if err != nil {
		log.Printf("Warning: failed to initialize telemetry: %v", err)
	}

	var metrics *telemetry.Metrics
	if provider != nil {
		if metrics, err = telemetry.InitMetrics(); err != nil {
			log.Printf("Warning: failed to initialize metrics: %v", err)
			metrics = nil
		}
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	authCfg := auth.LoadConfig()
	if authCfg.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokens := auth.NewTokenService(authCfg)

	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions from %s: %v", permsPath, err)
	}

	// Events are best-effort; the service runs without a broker.
	var publisher messaging.PublisherInterface
	if p, err := messaging.NewPublisher(); err != nil {
		log.Printf("Warning: event publishing disabled: %v", err)
	} else {
		publisher = p
		defer p.Close()
	}

	router := httpx.SetupRouter(database, tokens, authCfg, perms, publisher, metrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      httpx.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("clinic-service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: server shutdown: %v", err)
	}
	if provider != nil {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Warning: telemetry shutdown: %v", err)
		}
	}
	log.Println("Shutdown complete")
}
