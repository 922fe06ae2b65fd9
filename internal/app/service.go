package app

import (
	"primetime/internal/metrics"
	"primetime/internal/model"
	"primetime/internal/prime"
	"primetime/internal/proto"
)

// Service implements the application logic: judge one input line and
// produce the bytes to send back. It is stateless apart from the shared
// counters, so one Service instance serves every session concurrently.
type Service struct {
	Metrics *metrics.Metrics
}

// NewService creates a new application service.
func NewService(m *metrics.Metrics) *Service {
	return &Service{Metrics: m}
}

// HandleLine decodes one line, evaluates it, and returns the encoded
// reply. On a malformed line it returns the best-effort malformed
// indicator together with a non-nil error wrapping proto.ErrMalformed;
// the caller must write the indicator (if it can) and end the session.
func (s *Service) HandleLine(line []byte) ([]byte, error) {
	req, err := proto.DecodeRequest(line)
	if err != nil {
		s.Metrics.MalformedTotal.Add(1)
		return proto.MalformedReply(), err
	}

	resp := model.Response{
		Method: req.Method,
		Prime:  prime.IsPrime(req.Number),
	}
	s.Metrics.RequestsTotal.Add(1)
	return proto.EncodeResponse(resp), nil
}
