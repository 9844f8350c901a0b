package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/settings"
)

type errorResponse struct {
	Error string `json:"error"`
}

// GetSettings returns the current coerced settings value.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.Load(r.Context()))
	}
}

// PatchSettings applies a partial settings patch and persists the result.
// Invalid field values are coerced away rather than rejected; a persistence
// failure is the one error surfaced to the caller.
func PatchSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch settings.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		cur := d.Store.Load(r.Context())
		next := settings.Apply(cur, patch)

		if err := d.Store.Save(r.Context(), next); err != nil {
			d.Logger.Error("failed to save settings", logger.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to persist settings"})
			return
		}

		writeJSON(w, http.StatusOK, next)
	}
}

// ToggleSetting flips one boolean settings field.
func ToggleSetting(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		cur := d.Store.Load(r.Context())
		next, ok := settings.Toggle(cur, key)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "not a boolean setting: " + key})
			return
		}

		if err := d.Store.Save(r.Context(), next); err != nil {
			d.Logger.Error("failed to save settings", logger.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to persist settings"})
			return
		}

		writeJSON(w, http.StatusOK, next)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
