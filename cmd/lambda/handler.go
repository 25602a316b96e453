package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"whats4dinner/filter"
	"whats4dinner/spoonacular"
)

type Params struct {
	Query   string         `json:"query"`
	Filters filter.Options `json:"filters"`
	Channel string         `json:"channel"`
}

type Results struct {
	Recipes []spoonacular.RecipeSummary `json:"recipes"`
}

type recipeSearcher interface {
	SearchRecipes(ctx context.Context, params url.Values) ([]spoonacular.RecipeSummary, error)
}

type pantryNames interface {
	Names(ctx context.Context) []string
}

type suggestionPoster interface {
	PostSuggestions(ctx context.Context, channel string, recipes []spoonacular.RecipeSummary, appURL string) error
}

type handler struct {
	pantry  pantryNames
	client  recipeSearcher
	slack   suggestionPoster // nil disables posting
	channel string
	appURL  string
	tracer  trace.Tracer
}

func (h *handler) handle(ctx context.Context, params Params) (Results, error) {
	ctx, span := h.tracer.Start(ctx, "handler.handle", trace.WithAttributes(
		attribute.String("query", params.Query),
	))
	defer span.End()

	names := h.pantry.Names(ctx)
	slog.Info("SETUP: Pantry loaded", "items_count", len(names))

	recipes, err := h.client.SearchRecipes(ctx, filter.Params(params.Filters, params.Query, names))
	if err != nil {
		span.SetStatus(codes.Error, "recipe search failed")
		span.RecordError(err)
		slog.Error("RESULT: Recipe search failed", "error", err)
		return Results{}, fmt.Errorf("failed to search recipes: %w", err)
	}
	slog.Info("RESULT: Recipes found", "recipes_count", len(recipes))
	span.SetAttributes(attribute.Int("recipes_count", len(recipes)))

	if h.slack != nil {
		channel := params.Channel
		if channel == "" {
			channel = h.channel
		}
		if err := h.slack.PostSuggestions(ctx, channel, recipes, h.appURL); err != nil {
			// the suggestions are still returned to the caller
			slog.Error("Failed to post result to Slack", "channel", channel, "error", err)
		}
	}

	return Results{Recipes: recipes}, nil
}
