// Package history persists a record of every optimize and tune run so
// past results can be listed or inspected later. It is an external
// collaborator to the qaoa core: the core never imports it.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/aristath/qoptimizer/internal/modules/qaoa"
)

// Kind identifies what a RunRecord captured.
type Kind string

const (
	KindOptimize Kind = "optimize"
	KindTune     Kind = "tune"
)

// RunRecord is one persisted optimize or tune invocation.
type RunRecord struct {
	ID            string
	Kind          Kind
	SubmittedAt   time.Time
	FinishedAt    time.Time
	PortfolioName string
	N             int
	Layers        int
	Samples       int
	DurationMS    int64
	Result        []byte // msgpack-encoded qaoa.Result or qaoa.QAOAParameters
	Error         string
}

// Store is a sqlite-backed repository of RunRecords.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures its schema exists.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("history: ping database: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "history").Logger()}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS run_records (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	submitted_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	portfolio_name TEXT NOT NULL,
	n INTEGER NOT NULL,
	layers INTEGER NOT NULL,
	samples INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	result BLOB,
	error TEXT
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("history: migrate schema: %w", err)
	}
	return nil
}

// RecordOptimize persists the outcome of an Optimize call.
func (s *Store) RecordOptimize(portfolioName string, portfolio *qaoa.PortfolioData, params *qaoa.QAOAParameters, result *qaoa.Result, submittedAt, finishedAt time.Time, runErr error) (string, error) {
	payload, err := msgpack.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("history: encode result: %w", err)
	}
	return s.insert(KindOptimize, portfolioName, portfolio.N(), params.Layers, params.Samples, payload, submittedAt, finishedAt, runErr)
}

// RecordTune persists the outcome of an OptimizeParameters call.
func (s *Store) RecordTune(portfolioName string, portfolio *qaoa.PortfolioData, layers, samples int, best *qaoa.QAOAParameters, submittedAt, finishedAt time.Time, runErr error) (string, error) {
	payload, err := msgpack.Marshal(best)
	if err != nil {
		return "", fmt.Errorf("history: encode parameters: %w", err)
	}
	return s.insert(KindTune, portfolioName, portfolio.N(), layers, samples, payload, submittedAt, finishedAt, runErr)
}

func (s *Store) insert(kind Kind, portfolioName string, n, layers, samples int, payload []byte, submittedAt, finishedAt time.Time, runErr error) (string, error) {
	id := uuid.New().String()
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	_, err := s.db.Exec(
		`INSERT INTO run_records (id, kind, submitted_at, finished_at, portfolio_name, n, layers, samples, duration_ms, result, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(kind), submittedAt, finishedAt, portfolioName, n, layers, samples,
		finishedAt.Sub(submittedAt).Milliseconds(), payload, errText,
	)
	if err != nil {
		return "", fmt.Errorf("history: insert record: %w", err)
	}
	s.log.Debug().Str("run_id", id).Str("kind", string(kind)).Msg("recorded run")
	return id, nil
}

// Recent returns the most recently finished run records, newest first.
func (s *Store) Recent(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, kind, submitted_at, finished_at, portfolio_name, n, layers, samples, duration_ms, result, error
		 FROM run_records ORDER BY finished_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var kind string
		if err := rows.Scan(&r.ID, &kind, &r.SubmittedAt, &r.FinishedAt, &r.PortfolioName, &r.N, &r.Layers, &r.Samples, &r.DurationMS, &r.Result, &r.Error); err != nil {
			return nil, fmt.Errorf("history: scan record: %w", err)
		}
		r.Kind = Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
