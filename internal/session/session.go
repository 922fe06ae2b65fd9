// Package session implements the per-connection protocol state machine.
// A Session owns the line buffer and fault flag for exactly one client and
// is fed raw byte chunks, so the whole protocol path is exercisable
// without a socket.
package session

import (
	"bytes"
	"errors"
	"io"
)

// State of a session. Transitions are one-way: Open is the only live
// state, Closing and Faulted are terminal.
type State int

const (
	StateOpen State = iota
	StateClosing
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "Open"
	case StateClosing:
		return "Closing"
	case StateFaulted:
		return "Faulted"
	default:
		return "Unknown"
	}
}

// LineHandler judges one complete line (terminator stripped) and returns
// the bytes to send back. A non-nil error marks the line malformed; the
// returned bytes are then a best-effort indicator to write before the
// session ends.
type LineHandler interface {
	HandleLine(line []byte) ([]byte, error)
}

// ErrLineTooLong reports a pending line that grew past the configured cap
// without a terminator.
var ErrLineTooLong = errors.New("pending line exceeds limit")

// Session buffers one client's byte stream, splits it into lines, and
// drives the handler. It is owned by a single goroutine and is not safe
// for concurrent use; no Session state is ever shared across connections.
type Session struct {
	handler LineHandler
	out     io.Writer
	maxLine int

	buf      []byte
	state    State
	err      error
	reason   string
	lines    int64
	requests int64
}

func New(h LineHandler, out io.Writer, maxLine int) *Session {
	return &Session{handler: h, out: out, maxLine: maxLine, reason: "open"}
}

// Feed appends a chunk of received bytes and processes every complete
// line in arrival order. The first malformed line, write failure, or
// oversized pending line faults the session; any bytes still buffered at
// that point are discarded and never processed. Once terminal, Feed
// returns the same error for every subsequent call.
func (s *Session) Feed(chunk []byte) error {
	if s.state != StateOpen {
		return s.err
	}
	s.buf = append(s.buf, chunk...)

	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		line := s.buf[:i]
		s.buf = s.buf[i+1:]
		s.lines++

		reply, err := s.handler.HandleLine(line)
		if err != nil {
			if len(reply) > 0 {
				s.out.Write(reply) // best effort, the session is done either way
			}
			s.fault("malformed", err)
			return s.err
		}
		if _, werr := s.out.Write(reply); werr != nil {
			s.fault("io-error", werr)
			return s.err
		}
		s.requests++
	}

	if len(s.buf) > s.maxLine {
		s.fault("line-overflow", ErrLineTooLong)
		return s.err
	}
	return nil
}

// CloseInput marks a clean peer-initiated end of stream. A partial line
// left in the buffer is discarded, not judged.
func (s *Session) CloseInput() {
	if s.state != StateOpen {
		return
	}
	s.state = StateClosing
	s.reason = "closed"
	s.buf = nil
}

// Abort faults the session due to a transport-level failure.
func (s *Session) Abort(err error) {
	if s.state != StateOpen {
		return
	}
	s.fault("io-error", err)
}

func (s *Session) fault(reason string, err error) {
	s.state = StateFaulted
	s.reason = reason
	s.err = err
	s.buf = nil
}

func (s *Session) State() State { return s.state }

// Reason is a short disconnect label for the connection log.
func (s *Session) Reason() string { return s.reason }

// Lines is the count of complete lines consumed, malformed ones included.
func (s *Session) Lines() int64 { return s.lines }

// Requests is the count of lines answered with a conforming response.
func (s *Session) Requests() int64 { return s.requests }
