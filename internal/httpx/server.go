// Package httpx is the hosting-platform surface: liveness endpoints the
// free tier polls, a human-readable uptime page, and the Telegram
// webhook mount. It is not part of the order lifecycle.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/apopova/breathing-practice-bot/internal/keepalive"
)

type Options struct {
	StartTime   time.Time
	Port        int
	WebhookMode bool

	// WebhookPath and WebhookHandler mount the Telegram webhook when
	// webhook mode is on. The path carries a random secret segment.
	WebhookPath    string
	WebhookHandler http.HandlerFunc

	// OrderCounts reads the store sizes for the status payload.
	OrderCounts func() (pending, completed int)
}

type Server struct {
	opts Options

	mu       sync.Mutex
	lastPing time.Time
}

func NewServer(opts Options) *Server {
	return &Server{opts: opts, lastPing: opts.StartTime}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/", s.home)
	r.Get("/ping", s.ping)
	r.Get("/status", s.status)
	if s.opts.WebhookMode && s.opts.WebhookHandler != nil {
		r.Post(s.opts.WebhookPath, s.opts.WebhookHandler)
	}
	return r
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	uptime := keepalive.FormatUptime(time.Since(s.opts.StartTime))
	mode := "long polling"
	if s.opts.WebhookMode {
		mode = "webhook"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html>
  <head><title>Breathing Practice Bot</title></head>
  <body>
    <h1>Breathing Practice Bot</h1>
    <p><strong>Status:</strong> Bot is running in %s mode</p>
    <p><strong>Uptime:</strong> %s</p>
    <p><strong>Started:</strong> %s</p>
    <p><strong>Port:</strong> %d</p>
  </body>
</html>`, mode, uptime, s.opts.StartTime.Format(time.RFC3339), s.opts.Port)
}

// ping is the hosting-platform liveness probe. It must answer 200 with a
// plain body no matter what.
func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lastPing = time.Now()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type statusMemory struct {
	AllocBytes uint64 `json:"alloc_bytes"`
	SysBytes   uint64 `json:"sys_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

type statusOrders struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

type statusResponse struct {
	Status      string       `json:"status"`
	Uptime      int64        `json:"uptime"`
	UptimeHuman string       `json:"uptime_human"`
	StartTime   time.Time    `json:"start_time"`
	CurrentTime time.Time    `json:"current_time"`
	WebhookMode bool         `json:"webhook_mode"`
	Port        int          `json:"port"`
	LastPing    time.Time    `json:"last_ping"`
	Memory      statusMemory `json:"memory"`
	Orders      statusOrders `json:"orders"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	lastPing := s.lastPing
	s.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := statusResponse{
		Status:      "ok",
		Uptime:      int64(time.Since(s.opts.StartTime).Seconds()),
		UptimeHuman: keepalive.FormatUptime(time.Since(s.opts.StartTime)),
		StartTime:   s.opts.StartTime,
		CurrentTime: time.Now(),
		WebhookMode: s.opts.WebhookMode,
		Port:        s.opts.Port,
		LastPing:    lastPing,
		Memory: statusMemory{
			AllocBytes: mem.Alloc,
			SysBytes:   mem.Sys,
			NumGC:      mem.NumGC,
		},
	}
	if s.opts.OrderCounts != nil {
		resp.Orders.Pending, resp.Orders.Completed = s.opts.OrderCounts()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
