package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/httpserver/handlers"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Get("/api/settings", handlers.GetSettings(d))
	r.Patch("/api/settings", handlers.PatchSettings(d))
	r.Post("/api/settings/{key}/toggle", handlers.ToggleSetting(d))
}
