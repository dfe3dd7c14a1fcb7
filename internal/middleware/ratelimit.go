package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"quizlyst-backend/internal/models"
)

// clientWindow is one caller's position in the current fixed window.
type clientWindow struct {
	start time.Time
	count int
}

// RateLimiter caps requests per client IP over a fixed window. The AI
// routes sit behind it so one caller cannot drain the completion quota for
// everyone else.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	done    chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop halts the background sweep of expired windows. Limiting itself keeps
// working after Stop; only the memory reclamation ends.
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, cw := range rl.clients {
				if time.Since(cw.start) > rl.window {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow records one request for ip and reports whether it still fits the
// window. The window is anchored at the caller's first request, not the
// last, so a steady trickle cannot hold one window open forever.
func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[ip]
	if !ok || now.Sub(cw.start) > rl.window {
		rl.clients[ip] = &clientWindow{start: now, count: 1}
		return true
	}

	cw.count++
	return cw.count <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: models.APIError{
					Code:      "RATE_LIMITED",
					Message:   "Too many requests. Please try again later.",
					RequestID: r.Header.Get("X-Request-ID"),
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port when RemoteAddr carries one. Behind the RealIP
// middleware RemoteAddr is already a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
