// Package metrics holds the process-wide aggregate counters. They are the
// only state shared across sessions and are write-only on the hot path.
package metrics

import "sync/atomic"

type Metrics struct {
	ConnectionsTotal  atomic.Int64
	ConnectionsActive atomic.Int64
	RequestsTotal     atomic.Int64
	MalformedTotal    atomic.Int64
	FaultsTotal       atomic.Int64
}

func New() *Metrics {
	return &Metrics{}
}

// Snapshot is a point-in-time copy suitable for JSON rendering.
type Snapshot struct {
	ConnectionsTotal  int64 `json:"connections_total"`
	ConnectionsActive int64 `json:"connections_active"`
	RequestsTotal     int64 `json:"requests_total"`
	MalformedTotal    int64 `json:"malformed_total"`
	FaultsTotal       int64 `json:"faults_total"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		ConnectionsTotal:  m.ConnectionsTotal.Load(),
		ConnectionsActive: m.ConnectionsActive.Load(),
		RequestsTotal:     m.RequestsTotal.Load(),
		MalformedTotal:    m.MalformedTotal.Load(),
		FaultsTotal:       m.FaultsTotal.Load(),
	}
}
