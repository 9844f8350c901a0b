package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/settings"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Events upgrades to a websocket and streams settings patches to the
// client. On attach the current full settings record is sent first, so a
// freshly connected context starts from the persisted state instead of
// waiting for the next change.
func Events(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Warn("websocket upgrade failed", logger.Error(err))
			return
		}
		defer func() {
			_ = conn.Close()
		}()

		// Serialise all websocket writes — gorilla/websocket forbids
		// concurrent writes.
		var writeMu sync.Mutex
		writePatch := func(p settings.Patch) error {
			writeMu.Lock()
			defer writeMu.Unlock()
			return conn.WriteJSON(p)
		}

		id, patches := d.Hub.Attach()
		defer d.Hub.Detach(id)

		if err := writePatch(settings.Record(d.Store.Load(r.Context()))); err != nil {
			return
		}

		// Goroutine: pump patches to the client. Exits when Detach closes
		// the channel.
		go func() {
			for patch := range patches {
				if err := writePatch(patch); err != nil {
					return
				}
			}
		}()

		// Main loop: drain client frames so close/ping handling works.
		// Clients have nothing to say on this feed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
