package tcp

import (
	"context"
	"errors"
	"log"
	"net"
	"sync/atomic"
	"time"

	"primetime/config"
	"primetime/internal/app"
	"primetime/internal/metrics"
	"primetime/internal/repo"
)

// Server accepts TCP connections and spawns one isolated Handler per
// client. The accept loop does no per-request work; sessions never share
// mutable state with each other.
type Server struct {
	App     *app.Service
	Repo    repo.Repository
	Metrics *metrics.Metrics
	Cfg     *config.Config

	ln  net.Listener
	seq atomic.Int64
}

// NewServer creates a new TCP query server. Call Listen before Serve.
func NewServer(svc *app.Service, r repo.Repository, m *metrics.Metrics, cfg *config.Config) *Server {
	return &Server{App: svc, Repo: r, Metrics: m, Cfg: cfg}
}

// Listen binds the configured address. A bind failure is fatal and is
// returned to the caller for the supervisor to handle.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address, useful when listening on ":0".
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled. Transient accept
// errors are logged and retried with backoff; an unusable listener ends
// the loop with the error.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	var delay time.Duration
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if delay == 0 {
					delay = 5 * time.Millisecond
				} else {
					delay *= 2
				}
				if delay > time.Second {
					delay = time.Second
				}
				log.Printf("[TCP] Accept error: %v, retrying in %v", err, delay)
				time.Sleep(delay)
				continue
			}
			return err
		}
		delay = 0

		seq := s.seq.Add(1)
		s.Metrics.ConnectionsTotal.Add(1)
		log.Printf("[TCP] conn %d: accepted from %s", seq, conn.RemoteAddr())
		go s.handle(conn, seq)
	}
}
