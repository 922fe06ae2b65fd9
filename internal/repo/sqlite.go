package repo

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"primetime/internal/model"
)

type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	r := &SQLiteRepo{db: db}
	if err := r.init(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepo) init() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS connections(
		seq INTEGER PRIMARY KEY,
		remote_addr TEXT NOT NULL,
		lines INTEGER NOT NULL,
		requests INTEGER NOT NULL,
		reason TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT NOT NULL
	);`)
	return err
}

func (r *SQLiteRepo) RecordConnection(cl model.ConnectionLog) error {
	_, err := r.db.Exec(`INSERT INTO connections(seq, remote_addr, lines, requests, reason, started_at, ended_at)
		VALUES(?, ?, ?, ?, ?, ?, ?);`,
		cl.Seq, cl.RemoteAddr, cl.Lines, cl.Requests, cl.Reason,
		cl.StartedAt.UTC().Format(time.RFC3339Nano),
		cl.EndedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (r *SQLiteRepo) RecentConnections(limit int) ([]model.ConnectionLog, error) {
	rows, err := r.db.Query(`SELECT seq, remote_addr, lines, requests, reason, started_at, ended_at
		FROM connections ORDER BY seq DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ConnectionLog
	for rows.Next() {
		var cl model.ConnectionLog
		var started, ended string
		if err := rows.Scan(&cl.Seq, &cl.RemoteAddr, &cl.Lines, &cl.Requests, &cl.Reason, &started, &ended); err != nil {
			return nil, err
		}
		cl.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		cl.EndedAt, _ = time.Parse(time.RFC3339Nano, ended)
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
