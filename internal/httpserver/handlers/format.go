package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/frzip09/absolute-time/internal/dom"
	"github.com/frzip09/absolute-time/internal/formatter"
	"github.com/frzip09/absolute-time/internal/httpserver/deps"
)

type formatRequest struct {
	Path string `json:"path"`
	HTML string `json:"html"`
}

type formatResponse struct {
	Count int    `json:"count"`
	HTML  string `json:"html"`
}

// Format runs one full formatting pass over a submitted document with the
// current settings and returns the rewritten HTML plus the element count.
func Format(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req formatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		page, err := dom.NewPageFromString(req.HTML, req.Path)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unparseable HTML"})
			return
		}

		count := formatter.FormatAll(page, d.Store.Load(r.Context()), d.TimeNow())

		html, err := page.Html()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to render document"})
			return
		}

		writeJSON(w, http.StatusOK, formatResponse{Count: count, HTML: html})
	}
}
