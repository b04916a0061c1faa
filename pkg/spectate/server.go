package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server serves a Hub over HTTP
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
}

// Listen binds addr for the hub's feed
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate listen %s: %w", addr, err)
	}
	return &Server{
		hub: hub,
		http: &http.Server{
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln: ln,
	}, nil
}

// Addr returns the bound address
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve blocks until ctx is cancelled, then disconnects the spectators and
// shuts the server down
func (s *Server) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.http.Serve(s.ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		// Shutdown leaves hijacked websocket connections alone
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectate shutdown: %w", err)
		}
		return nil
	}
}
