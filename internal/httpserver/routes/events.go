package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/httpserver/handlers"
)

func init() { Register(registerEvents) }

func registerEvents(r chi.Router, d deps.Deps) {
	r.Get("/api/events", handlers.Events(d))
}
