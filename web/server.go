// Package web renders the home, recipe list, recipe detail and pantry pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"whats4dinner"
	"whats4dinner/pantry"
	"whats4dinner/spoonacular"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{"home.html", "recipes.html", "recipe.html", "pantry.html"}

// RecipeClient is the subset of the recipe API the pages need.
type RecipeClient interface {
	SearchIngredients(ctx context.Context, query string) ([]spoonacular.Ingredient, error)
	SearchRecipes(ctx context.Context, params url.Values) ([]spoonacular.RecipeSummary, error)
	RecipeDetail(ctx context.Context, id int) (spoonacular.Detail, error)
}

type Pantry interface {
	List(ctx context.Context) []pantry.Item
	Names(ctx context.Context) []string
	Add(ctx context.Context, id int, name, image string) (pantry.Item, error)
	Update(ctx context.Context, id int, quantity string, unit pantry.Unit) (pantry.Item, error)
	Remove(ctx context.Context, id int) (bool, error)
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type Server struct {
	client    RecipeClient
	pantry    Pantry
	templates map[string]*template.Template
	router    chi.Router
}

func NewServer(client RecipeClient, p Pantry) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		client:    client,
		pantry:    p,
		templates: templates,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleHome)
	r.Get("/recipes", s.handleRecipes)
	r.Get("/recipes/{id}", s.handleRecipeDetail)

	r.Route("/pantry", func(r chi.Router) {
		r.Get("/", s.handlePantry)
		r.Post("/search", s.handlePantrySearch)
		r.Get("/export.xlsx", s.handlePantryExport)
		r.Post("/items", s.handlePantryAdd)
		r.Post("/items/{id}", s.handlePantryEdit)
		r.Post("/items/{id}/delete", s.handlePantryRemove)
	})

	return r
}

// Handler returns the router wrapped with OpenTelemetry instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, whats4dinner.TracerNameWeb,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("SETUP: HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("SETUP: Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := s.templates[page]
	if !ok {
		slog.Error("VIEW: Unknown template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("VIEW: Failed to render template", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func parseTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"ingredientImage": spoonacular.IngredientImageURL,
		"join":            strings.Join,
		"round": func(f float64) int {
			return int(f + 0.5)
		},
	}

	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", page, err)
		}
		out[page] = t
	}
	return out, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("VIEW: Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
