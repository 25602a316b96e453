// Package spoonacular is a small client for the Spoonacular recipe and
// ingredient API.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"whats4dinner"
)

const (
	DefaultBaseURL = "https://api.spoonacular.com"
	searchNumber   = 20
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient whats4dinner.HTTPClient
	logger     whats4dinner.CallLogger
	tracer     trace.Tracer

	requests metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

type ClientOpts struct {
	BaseURL        string
	APIKey         string
	HTTPClient     whats4dinner.HTTPClient
	CallLogger     whats4dinner.CallLogger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

func NewClient(opts ClientOpts) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("missing spoonacular api key")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.CallLogger == nil {
		opts.CallLogger = whats4dinner.NewNoOpCallLogger()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}

	meter := opts.MeterProvider.Meter(whats4dinner.TracerNameClient)
	requests, err := meter.Int64Counter("spoonacular_requests_total",
		metric.WithDescription("Total number of requests sent to the recipe API"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("spoonacular_request_failures_total",
		metric.WithDescription("Total number of recipe API requests that failed"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("spoonacular_request_duration_seconds",
		metric.WithDescription("Duration of recipe API requests in seconds"))
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: opts.HTTPClient,
		logger:     opts.CallLogger,
		tracer:     opts.TracerProvider.Tracer(whats4dinner.TracerNameClient),
		requests:   requests,
		failures:   failures,
		duration:   duration,
	}, nil
}

// SearchIngredients looks up catalog ingredients by name. A blank query
// returns no results without touching the network.
func (c *Client) SearchIngredients(ctx context.Context, query string) ([]Ingredient, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Ingredient{}, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("number", strconv.Itoa(searchNumber))

	var res ingredientSearchResponse
	if err := c.get(ctx, "search_ingredients", "/food/ingredients/search", q, &res); err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	if res.Results == nil {
		res.Results = []Ingredient{}
	}
	return res.Results, nil
}

// SearchRecipes runs a complex search with the given parameters, usually
// built by the filter package.
func (c *Client) SearchRecipes(ctx context.Context, params url.Values) ([]RecipeSummary, error) {
	var res complexSearchResponse
	if err := c.get(ctx, "search_recipes", "/recipes/complexSearch", params, &res); err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	if res.Results == nil {
		res.Results = []RecipeSummary{}
	}
	return res.Results, nil
}

// RecipeDetail fetches the recipe information and its nutrition widget
// concurrently. Either request failing fails the whole call.
func (c *Client) RecipeDetail(ctx context.Context, id int) (Detail, error) {
	ctx, span := c.tracer.Start(ctx, "Client.RecipeDetail", trace.WithAttributes(attribute.Int("recipe_id", id)))
	defer span.End()

	var (
		recipe RecipeDetail
		widget nutritionWidget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := url.Values{}
		q.Set("includeNutrition", "true")
		return c.get(gctx, "recipe_information", fmt.Sprintf("/recipes/%d/information", id), q, &recipe)
	})
	g.Go(func() error {
		return c.get(gctx, "recipe_nutrition", fmt.Sprintf("/recipes/%d/nutritionWidget.json", id), nil, &widget)
	})

	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, "recipe detail failed")
		span.RecordError(err)
		return Detail{}, fmt.Errorf("recipe %d: %w", id, err)
	}

	return Detail{Recipe: recipe, Nutrition: widget.nutrition()}, nil
}

// get issues one GET request and decodes the JSON body into out. The api key
// is added here and kept out of everything that gets logged.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	ctx, span := c.tracer.Start(ctx, "Client."+op)
	defer span.End()

	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	logged := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		logged += "?" + enc
	}
	q.Set("apiKey", c.apiKey)
	full := c.baseURL + path + "?" + q.Encode()

	span.SetAttributes(
		attribute.String("operation", op),
		attribute.String("http.url", logged),
	)
	attrs := metric.WithAttributes(attribute.String("operation", op))

	call := whats4dinner.CallLog{
		Operation: op,
		Timestamp: time.Now(),
		Method:    http.MethodGet,
		URL:       logged,
	}

	start := time.Now()
	status, err := c.do(ctx, full, out)
	elapsed := time.Since(start)

	c.requests.Add(ctx, 1, attrs)
	c.duration.Record(ctx, elapsed.Seconds(), attrs)

	call.Status = status
	call.DurationMS = elapsed.Milliseconds()
	if err != nil {
		call.Error = err.Error()
		c.failures.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, "request failed")
		span.RecordError(err)
		slog.Warn("CLIENT: Request failed", "operation", op, "url", logged, "status", status, "error", err)
	} else {
		call.Results = resultCount(out)
		slog.Debug("CLIENT: Request completed", "operation", op, "status", status, "duration_ms", call.DurationMS)
	}
	span.SetAttributes(attribute.Int("http.status_code", status))

	if lerr := c.logger.LogCall(call); lerr != nil {
		slog.Warn("CLIENT: Failed to record call", "operation", op, "error", lerr)
	}

	return err
}

func (c *Client) do(ctx context.Context, rawURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, redactKey(err, c.apiKey)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// redactKey strips the api key from transport errors, which quote the request URL.
func redactKey(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	uerr.URL = strings.NewReplacer(
		key, "REDACTED",
		url.QueryEscape(key), "REDACTED",
	).Replace(uerr.URL)
	return err
}

func resultCount(out any) int {
	switch v := out.(type) {
	case *ingredientSearchResponse:
		return len(v.Results)
	case *complexSearchResponse:
		return len(v.Results)
	default:
		return 1
	}
}
