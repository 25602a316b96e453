package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"whats4dinner"
	"whats4dinner/pantry"
	"whats4dinner/spoonacular"
	"whats4dinner/storage"
	"whats4dinner/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := whats4dinner.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %s", err)
	}

	var serverConfig whats4dinner.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var apiConfig whats4dinner.SpoonacularConfig
	if err := envdecode.Decode(&apiConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var storageConfig whats4dinner.StorageConfig
	if err := envdecode.Decode(&storageConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	kv, closeStore, err := storage.Open(ctx, storageConfig)
	if err != nil {
		log.Fatalf("Failed to open storage: %s", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("SETUP: Failed to close storage", "error", err)
		}
	}()

	opts := spoonacular.ClientOpts{
		BaseURL: apiConfig.BaseURL,
		APIKey:  apiConfig.APIKey,
		HTTPClient: &http.Client{
			Timeout:   apiConfig.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		CallLogger: whats4dinner.NewNoOpCallLogger(),
	}

	if serverConfig.CallLogPath != "" {
		f, err := os.OpenFile(serverConfig.CallLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open call log: %s", err)
		}
		defer f.Close()
		opts.CallLogger = whats4dinner.NewJSONLineCallLogger(f)
		slog.Info("SETUP: Recording API calls", "path", serverConfig.CallLogPath)
	}

	if serverConfig.OtelEnabled {
		tracerProvider, meterProvider, otelShutdown, err := whats4dinner.InitOtel(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize OpenTelemetry: %s", err)
		}
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
		opts.TracerProvider = tracerProvider
		opts.MeterProvider = meterProvider
		slog.Info("SETUP: OpenTelemetry initialized")
	}

	client, err := spoonacular.NewClient(opts)
	if err != nil {
		log.Fatalf("Failed to create recipe client: %s", err)
	}

	manager := pantry.NewManager(pantry.NewStore(kv))

	srv, err := web.NewServer(client, manager)
	if err != nil {
		log.Fatalf("Failed to create web server: %s", err)
	}

	if err := srv.ListenAndServe(ctx, serverConfig.Addr, serverConfig.ShutdownTimeout); err != nil {
		slog.Error("SETUP: Server stopped", "error", err)
	}
}
