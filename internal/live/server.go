// Package live serves an interactive plot to the browser over a
// websocket: input events go up as JSON, rendered frames come back as PNG.
package live

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"grapher/pkg/api"
	"grapher/pkg/plot"
)

// Server handles the page and one websocket session per connection.
type Server struct {
	upgrader websocket.Upgrader
	source   string
	opts     []api.Option

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

// NewServer creates a server whose sessions start by plotting source.
func NewServer(source string, opts ...api.Option) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		source:   source,
		opts:     opts,
		sessions: make(map[*Session]struct{}),
	}
}

// Handler returns the HTTP routes: the page at "/" and the socket at "/ws".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/ws", s.HandleWebSocket)
	return mux
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	plot.Logger().Info("live server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeAll()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// HandleWebSocket upgrades the connection and runs a session on it.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		plot.Logger().Warn("failed to upgrade connection", "err", err)
		return
	}

	p, err := api.New(s.opts...)
	if err != nil {
		plot.Logger().Error("failed to create plot", "err", err)
		conn.Close()
		return
	}
	p.SetSource(s.source)

	session := newSession(conn, p)
	s.mu.Lock()
	s.sessions[session] = struct{}{}
	s.mu.Unlock()

	go func() {
		session.run()
		s.mu.Lock()
		delete(s.sessions, session)
		s.mu.Unlock()
	}()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for session := range s.sessions {
		session.close()
	}
}
