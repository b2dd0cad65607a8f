// Package httpapi serves the glaze operations over HTTP for the web
// frontend. All compute endpoints delegate to glaze.Ops, which already
// returns wire-shaped tagged results, so handlers only decode requests
// and write JSON.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roach88/glazecalc/internal/designer"
	"github.com/roach88/glazecalc/internal/glaze"
	"github.com/roach88/glazecalc/internal/library"
	"github.com/roach88/glazecalc/internal/materials"
)

// Handler holds the shared read-only state plus the optional archive.
type Handler struct {
	Ops     *glaze.Ops
	DB      *materials.Database
	Library *library.Library
	Archive *library.Archive
}

// NewHandler wires a Handler. Archive may be nil; the recipe endpoints
// then respond with 503.
func NewHandler(ops *glaze.Ops, db *materials.Database, lib *library.Library, archive *library.Archive) *Handler {
	return &Handler{Ops: ops, DB: db, Library: lib, Archive: archive}
}

// RegisterRoutes mounts every API route on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/design", h.Design)
	r.Post("/api/analyze", h.Analyze)
	r.Post("/api/variation", h.Variation)
	r.Post("/api/scale", h.Scale)

	r.Get("/api/materials", h.Materials)
	r.Get("/api/clay-bodies", h.ClayBodies)
	r.Get("/api/references", h.References)

	r.Get("/api/recipes", h.ListRecipes)
	r.Post("/api/recipes", h.SaveRecipe)
	r.Get("/api/recipes/{id}", h.GetRecipe)
	r.Delete("/api/recipes/{id}", h.DeleteRecipe)
}

type designRequest struct {
	Description string `json:"description"`
	ClayBody    string `json:"clay_body"`
	Cone        string `json:"cone"`
}

func (h *Handler) Design(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.Ops.Design(req.Description, req.ClayBody, req.Cone))
}

type analyzeRequest struct {
	Recipe   map[string]float64 `json:"recipe"`
	ClayBody string             `json:"clay_body"`
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.Ops.Analyze(req.Recipe, req.ClayBody))
}

type variationRequest struct {
	Recipe            map[string]float64 `json:"recipe"`
	Direction         string             `json:"direction"`
	Description       string             `json:"description"`
	ClayBody          string             `json:"clay_body"`
	ColorantAdditions map[string]float64 `json:"colorant_additions"`
	Parsed            *designer.Parsed   `json:"parsed"`
}

func (h *Handler) Variation(w http.ResponseWriter, r *http.Request) {
	var req variationRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.Ops.Variation(req.Recipe, req.Direction, req.Description, req.ClayBody, req.ColorantAdditions, req.Parsed))
}

type scaleRequest struct {
	Recipe       map[string]float64 `json:"recipe"`
	TargetWeight float64            `json:"target_weight"`
}

func (h *Handler) Scale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.Ops.Scale(req.Recipe, req.TargetWeight))
}

func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.DB.Names())
}

func (h *Handler) ClayBodies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.DB.ClayBodies())
}

func (h *Handler) References(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	surface := r.URL.Query().Get("surface")
	writeJSON(w, http.StatusOK, h.Library.Filter(source, surface))
}

type saveRecipeRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Cone        string             `json:"cone"`
	ClayBody    string             `json:"clay_body"`
	Recipe      map[string]float64 `json:"recipe"`
	Additions   map[string]float64 `json:"additions"`
}

func (h *Handler) SaveRecipe(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe archive is not configured")
		return
	}
	var req saveRecipeRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := h.Archive.Save(r.Context(), library.SavedRecipe{
		Name:        req.Name,
		Description: req.Description,
		Cone:        req.Cone,
		ClayBody:    req.ClayBody,
		Recipe:      req.Recipe,
		Additions:   req.Additions,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": id})
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe archive is not configured")
		return
	}
	list, err := h.Archive.List(r.Context())
	if err != nil {
		h.serverError(w, r.Context(), "list recipes", err)
		return
	}
	if list == nil {
		list = []library.SavedRecipe{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe archive is not configured")
		return
	}
	rec, err := h.Archive.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		h.serverError(w, r.Context(), "get recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe archive is not configured")
		return
	}
	if err := h.Archive.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.serverError(w, r.Context(), "delete recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) serverError(w http.ResponseWriter, ctx context.Context, op string, err error) {
	slog.ErrorContext(ctx, "archive operation failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
