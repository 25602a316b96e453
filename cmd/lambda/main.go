package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"whats4dinner"
	"whats4dinner/pantry"
	"whats4dinner/slack"
	"whats4dinner/spoonacular"
	"whats4dinner/storage"
)

func main() {
	ctx := context.Background()

	var apiConfig whats4dinner.SpoonacularConfig
	if err := envdecode.Decode(&apiConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var storageConfig whats4dinner.StorageConfig
	if err := envdecode.Decode(&storageConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var slackConfig whats4dinner.SlackConfig
	if err := envdecode.Decode(&slackConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var serverConfig whats4dinner.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	kv, closeStore, err := storage.Open(ctx, storageConfig)
	if err != nil {
		log.Fatalf("Failed to open storage: %s", err)
	}
	defer closeStore() // nolint: errcheck

	httpClient := &http.Client{
		Timeout:   apiConfig.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	opts := spoonacular.ClientOpts{
		BaseURL:    apiConfig.BaseURL,
		APIKey:     apiConfig.APIKey,
		HTTPClient: httpClient,
		CallLogger: whats4dinner.NewStdoutCallLogger(),
	}

	var flush func(context.Context) error
	if serverConfig.OtelEnabled {
		tracerProvider, meterProvider, otelShutdown, err := whats4dinner.InitOtel(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize OpenTelemetry: %s", err)
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
		opts.TracerProvider = tracerProvider
		opts.MeterProvider = meterProvider
		flush = tracerProvider.ForceFlush
	}

	client, err := spoonacular.NewClient(opts)
	if err != nil {
		log.Fatalf("Failed to create recipe client: %s", err)
	}

	h := &handler{
		pantry:  pantry.NewManager(pantry.NewStore(kv)),
		client:  client,
		channel: slackConfig.Channel,
		appURL:  slackConfig.AppURL,
		tracer:  otel.Tracer(whats4dinner.TracerNameLambda),
	}
	if slackConfig.WebhookURL != "" {
		h.slack = slack.NewClient(slackConfig.WebhookURL, httpClient)
	} else {
		slog.Info("SETUP: SLACK_WEBHOOK_URL not set, suggestions will not be posted")
	}

	fn := func(ctx context.Context, params Params) (Results, error) {
		res, err := h.handle(ctx, params)
		if flush != nil {
			if ferr := flush(ctx); ferr != nil {
				slog.Error("SETUP: Failed to flush traces", "error", ferr)
			}
		}
		return res, err
	}

	lambda.Start(fn)
}
