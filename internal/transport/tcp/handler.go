package tcp

import (
	"errors"
	"io"
	"log"
	"net"
	"time"

	"primetime/internal/model"
	"primetime/internal/session"
)

// handle owns one client connection for its whole lifetime. It reads raw
// chunks, feeds them to the session state machine, and records the
// outcome when the connection ends.
func (s *Server) handle(conn net.Conn, seq int64) {
	s.Metrics.ConnectionsActive.Add(1)
	started := time.Now()
	sess := session.New(s.App, conn, s.Cfg.MaxLineBytes)

	defer func() {
		s.Metrics.ConnectionsActive.Add(-1)
		if sess.State() == session.StateFaulted {
			s.Metrics.FaultsTotal.Add(1)
		}
		log.Printf("[TCP] conn %d: %s after %d lines (%s)",
			seq, sess.State(), sess.Lines(), sess.Reason())

		cl := model.ConnectionLog{
			Seq:        seq,
			RemoteAddr: conn.RemoteAddr().String(),
			Lines:      sess.Lines(),
			Requests:   sess.Requests(),
			Reason:     sess.Reason(),
			StartedAt:  started,
			EndedAt:    time.Now(),
		}
		conn.Close()
		if err := s.Repo.RecordConnection(cl); err != nil {
			log.Printf("[TCP] conn %d: record failed: %v", seq, err)
		}
	}()

	buf := make([]byte, s.Cfg.ReadBufferBytes)
	for {
		if s.Cfg.IdleTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.Cfg.IdleTimeout))
		}
		n, err := conn.Read(buf)
		if n > 0 {
			if ferr := sess.Feed(buf[:n]); ferr != nil {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				sess.CloseInput()
			} else {
				sess.Abort(err)
			}
			return
		}
	}
}
