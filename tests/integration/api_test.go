package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/frzip09/absolute-time/internal/httpserver/deps"
	"github.com/frzip09/absolute-time/internal/httpserver/routes"
	"github.com/frzip09/absolute-time/internal/logger"
	"github.com/frzip09/absolute-time/internal/notify"
	"github.com/frzip09/absolute-time/internal/settings"
	"github.com/frzip09/absolute-time/internal/storage"
)

type testEnv struct {
	server  *httptest.Server
	backend *storage.MemoryBackend
	store   *settings.Store
	hub     *notify.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := storage.NewMemoryBackend()
	store := settings.NewStore(backend, logger.Nop())
	hub := notify.NewHub(logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	relay := notify.NewRelay(store, hub, logger.Nop())
	if err := relay.Start(ctx); err != nil {
		t.Fatalf("failed to start relay: %v", err)
	}

	d := deps.Deps{
		Logger:  logger.Nop(),
		TimeNow: func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) },
		Store:   store,
		Hub:     hub,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	server := httptest.NewServer(r)

	t.Cleanup(func() {
		server.Close()
		relay.Stop()
		hub.Close()
		cancel()
	})

	return &testEnv{server: server, backend: backend, store: store, hub: hub}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, out.Bytes()
}

func TestSettingsLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Fresh install: defaults.
	resp, body := env.request(t, http.MethodGet, "/api/settings", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/settings = %d, want 200", resp.StatusCode)
	}
	var got settings.Settings
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if got != settings.Defaults() {
		t.Errorf("fresh settings = %+v, want defaults", got)
	}

	// Patch two fields, one of them invalid: the invalid one is coerced
	// away, the valid one sticks, and the result is persisted.
	resp, body = env.request(t, http.MethodPatch, "/api/settings",
		map[string]any{"dateStyle": "long", "showTime": "sometimes"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH /api/settings = %d, want 200", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if got.DateStyle != settings.DateStyleLong {
		t.Errorf("dateStyle = %q, want long", got.DateStyle)
	}
	if got.ShowTime != settings.TimeActionsOnly {
		t.Errorf("showTime = %q, want actionsOnly (invalid value must not stick)", got.ShowTime)
	}
	if persisted := env.store.Load(context.Background()); persisted != got {
		t.Errorf("persisted = %+v, response = %+v", persisted, got)
	}

	// Toggle a boolean.
	resp, body = env.request(t, http.MethodPost, "/api/settings/enabled/toggle", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle = %d, want 200", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if got.Enabled {
		t.Error("enabled still true after toggle")
	}

	// Toggling an enum field is a client error.
	resp, _ = env.request(t, http.MethodPost, "/api/settings/dateStyle/toggle", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("toggle on enum field = %d, want 400", resp.StatusCode)
	}
}

func TestFormatEndpoint(t *testing.T) {
	env := newTestEnv(t)

	page := `<html><body>
		<relative-time datetime="2025-11-20T08:30:00Z">3 months ago</relative-time>
	</body></html>`

	resp, body := env.request(t, http.MethodPost, "/api/format",
		map[string]any{"path": "/org/repo/commits", "html": page})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/format = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Count int    `json:"count"`
		HTML  string `json:"html"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("count = %d, want 1", out.Count)
	}
	for _, want := range []string{`format="datetime"`, `format-style="short"`, `weekday="short"`, `data-abstime="true"`} {
		if !strings.Contains(out.HTML, want) {
			t.Errorf("formatted HTML missing %s:\n%s", want, out.HTML)
		}
	}
	if strings.Contains(out.HTML, `hour=`) {
		t.Errorf("commits page got time attributes under actionsOnly:\n%s", out.HTML)
	}
}

func TestFormatEndpointExcludedRoute(t *testing.T) {
	env := newTestEnv(t)

	page := `<relative-time datetime="2025-11-20T08:30:00Z"></relative-time>`
	resp, body := env.request(t, http.MethodPost, "/api/format",
		map[string]any{"path": "/org/repo/issues/12", "html": page})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/format = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Count int    `json:"count"`
		HTML  string `json:"html"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out.Count != 0 {
		t.Errorf("count = %d on excluded route, want 0", out.Count)
	}
	if strings.Contains(out.HTML, "data-abstime") {
		t.Error("excluded route was formatted")
	}
}

func TestEventsFeedDeliversPatches(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial events feed: %v", err)
	}
	defer conn.Close()

	// First frame: the full current record.
	var initial settings.Patch
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("failed to read initial record: %v", err)
	}
	if got := settings.Coerce(initial); got != settings.Defaults() {
		t.Errorf("initial record coerces to %+v, want defaults", got)
	}

	// A save through the settings API shows up on the feed.
	resp, _ := env.request(t, http.MethodPatch, "/api/settings", map[string]any{"enabled": false})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH /api/settings = %d, want 200", resp.StatusCode)
	}

	var patch settings.Patch
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&patch); err != nil {
		t.Fatalf("failed to read patch: %v", err)
	}
	if patch["enabled"] != false {
		t.Errorf("patch = %v, want enabled=false", patch)
	}
}
