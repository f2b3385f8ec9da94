// Package graphstore wraps the Neo4j Go driver behind a small query
// interface so the load and export pipelines stay independent of driver
// types and can be tested against fakes.
package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/angraph/angraph/pkg/errors"
)

// connectTimeout bounds driver construction and the connectivity probe.
const connectTimeout = 10 * time.Second

// Querier executes Cypher against the store. Exec is for writes where the
// result is irrelevant; Query buffers and returns every record as a map
// keyed by the query's return aliases.
type Querier interface {
	Exec(ctx context.Context, cypher string, params map[string]any) error
	Query(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Store owns the driver connection for one pipeline run.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// Connect builds a driver from cfg and verifies connectivity before
// returning. An unreachable store is a startup failure; nothing is retried.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""), func(c *neo4j.Config) {
		c.SocketConnectTimeout = connectTimeout
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnectionFailed, err, "init driver for %s", cfg.URI)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, errors.Wrap(errors.ErrCodeConnectionFailed, err, "verify connectivity to %s", cfg.URI)
	}

	return &Store{driver: driver, database: cfg.Database}, nil
}

// Close releases the driver.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.driver == nil {
		return nil
	}
	err := s.driver.Close(ctx)
	s.driver = nil
	return err
}

// Session opens one session used for the whole pipeline run. Every query
// is its own implicit transaction; nothing spans queries.
func (s *Store) Session(ctx context.Context) *Session {
	return &Session{
		inner: s.driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeWrite,
			DatabaseName: s.database,
		}),
	}
}

// Session adapts a driver session to the Querier interface.
type Session struct {
	inner neo4j.SessionWithContext
}

// Close closes the underlying driver session.
func (s *Session) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

// Exec runs cypher and discards the result.
func (s *Session) Exec(ctx context.Context, cypher string, params map[string]any) error {
	res, err := s.inner.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// Query runs cypher and buffers all records.
func (s *Session) Query(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	res, err := s.inner.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	records, err := res.Collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		out[i] = rec.AsMap()
	}
	return out, nil
}

// EnsureConstraints creates the uniqueness constraint on the generic
// entity label's id. Best-effort: restricted users may not be allowed to
// manage schema, so the caller logs and continues on error.
func EnsureConstraints(ctx context.Context, q Querier) error {
	return q.Exec(ctx, "CREATE CONSTRAINT IF NOT EXISTS FOR (n:AngularEntity) REQUIRE n.id IS UNIQUE", nil)
}

// Clear removes every node and relationship from the store.
func Clear(ctx context.Context, q Querier) error {
	if err := q.Exec(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}
	return nil
}
