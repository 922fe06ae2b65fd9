package repo

import "primetime/internal/model"

// Repository records finished connections for diagnostics. Writes are
// fire-and-forget from the transport's point of view and never influence
// protocol behavior.
type Repository interface {
	RecordConnection(cl model.ConnectionLog) error
	RecentConnections(limit int) ([]model.ConnectionLog, error)
	Close() error
}

// NopRepo is used when no database path is configured.
type NopRepo struct{}

func (NopRepo) RecordConnection(model.ConnectionLog) error { return nil }

func (NopRepo) RecentConnections(int) ([]model.ConnectionLog, error) { return nil, nil }

func (NopRepo) Close() error { return nil }
