package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"whats4dinner/pantry"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) pantryView(r *http.Request) PantryView {
	items := s.pantry.List(r.Context())
	editID, _ := strconv.Atoi(r.URL.Query().Get("edit"))

	view := PantryView{
		Nav:     nav{Active: "pantry"},
		Items:   make([]PantryRow, 0, len(items)),
		Units:   pantry.Units,
		Search:  StatusIdle,
		Results: []IngredientResult{},
	}
	for _, it := range items {
		row := PantryRow{Item: it, Editing: editID != 0 && it.ID == editID}
		if t := it.Added(); !t.IsZero() {
			row.AddedOn = t.Local().Format("Jan 2, 2006")
		}
		view.Items = append(view.Items, row)
	}
	return view
}

func (s *Server) handlePantry(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "pantry.html", s.pantryView(r))
}

func (s *Server) handlePantrySearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	view := s.pantryView(r)
	view.Query = strings.TrimSpace(r.PostFormValue("q"))
	s.searchIngredients(r, &view)
	s.render(w, http.StatusOK, "pantry.html", view)
}

// searchIngredients fills in the view's search results, marking the ones
// already in the pantry. Failures leave an empty list.
func (s *Server) searchIngredients(r *http.Request, view *PantryView) {
	if view.Query == "" {
		return
	}
	found, err := s.client.SearchIngredients(r.Context(), view.Query)
	if err != nil {
		slog.Error("VIEW: Ingredient search failed", "query", view.Query, "error", err)
		view.Search = StatusFailed
		view.Error = "Ingredient search failed. Please try again later."
		return
	}

	have := make(map[int]bool, len(view.Items))
	for _, it := range view.Items {
		have[it.ID] = true
	}
	for _, ing := range found {
		view.Results = append(view.Results, IngredientResult{Ingredient: ing, InPantry: have[ing.ID]})
	}
	view.Search = StatusLoaded
}

func (s *Server) handlePantryAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.PostFormValue("id"))
	name := strings.TrimSpace(r.PostFormValue("name"))
	if err != nil || id <= 0 || name == "" {
		http.Error(w, "invalid ingredient", http.StatusBadRequest)
		return
	}

	_, err = s.pantry.Add(r.Context(), id, name, r.PostFormValue("image"))
	switch {
	case errors.Is(err, pantry.ErrAlreadyInPantry):
		view := s.pantryView(r)
		view.Query = strings.TrimSpace(r.PostFormValue("q"))
		view.Warning = pantry.ErrAlreadyInPantry.Error()
		s.searchIngredients(r, &view)
		s.render(w, http.StatusConflict, "pantry.html", view)
		return
	case err != nil:
		slog.Error("PANTRY: Add failed", "id", id, "error", err)
		http.Error(w, "failed to save pantry", http.StatusInternalServerError)
		return
	}

	slog.Info("PANTRY: Item added", "id", id, "name", name)
	http.Redirect(w, r, "/pantry", http.StatusSeeOther)
}

func (s *Server) handlePantryEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	unit, err := pantry.ParseUnit(r.PostFormValue("unit"))
	if err == nil {
		_, err = s.pantry.Update(r.Context(), id, r.PostFormValue("quantity"), unit)
	}
	switch {
	case errors.Is(err, pantry.ErrInvalidUnit):
		view := s.pantryView(r)
		view.Warning = err.Error()
		s.render(w, http.StatusBadRequest, "pantry.html", view)
		return
	case errors.Is(err, pantry.ErrNotInPantry):
		view := s.pantryView(r)
		view.Warning = pantry.ErrNotInPantry.Error()
		s.render(w, http.StatusNotFound, "pantry.html", view)
		return
	case err != nil:
		slog.Error("PANTRY: Update failed", "id", id, "error", err)
		http.Error(w, "failed to save pantry", http.StatusInternalServerError)
		return
	}

	slog.Info("PANTRY: Item updated", "id", id)
	http.Redirect(w, r, "/pantry", http.StatusSeeOther)
}

func (s *Server) handlePantryRemove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	removed, err := s.pantry.Remove(r.Context(), id)
	if err != nil {
		slog.Error("PANTRY: Remove failed", "id", id, "error", err)
		http.Error(w, "failed to save pantry", http.StatusInternalServerError)
		return
	}
	if removed {
		slog.Info("PANTRY: Item removed", "id", id)
	}
	http.Redirect(w, r, "/pantry", http.StatusSeeOther)
}

func (s *Server) handlePantryExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.pantry.ExportXLSX(r.Context(), &buf); err != nil {
		slog.Error("PANTRY: Export failed", "error", err)
		http.Error(w, "failed to export pantry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="pantry.xlsx"`)
	_, _ = buf.WriteTo(w)
}
