package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/httpserver/handlers"
)

func init() { Register(registerFormat) }

func registerFormat(r chi.Router, d deps.Deps) {
	r.Post("/api/format", handlers.Format(d))
}
