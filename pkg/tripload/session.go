package tripload

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session encapsulates the database resources for one table load:
// a connection pool and a single acquired connection.
//
// The acquired connection is exclusively owned by the session and is
// used for all statements of the load, including the post-commit
// verification. Session manages the lifecycle of both resources and
// ensures proper cleanup through a single Close() method.
//
// Thread-Safety: NOT safe for concurrent use. Each goroutine should have
// its own Session instance.
//
// Example usage:
//
//	session := tripload.NewSession(pool, conn)
//	defer session.Close()  // Single cleanup call - simple and safe
type Session struct {
	pool *pgxpool.Pool
	conn *pgxpool.Conn
}

// NewSession creates a new Session instance.
//
// Panics if pool or conn is nil (programmer error - callers should
// never create a Session with nil resources).
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}

	return &Session{
		pool: pool,
		conn: conn,
	}
}

// Pool returns the connection pool for the session.
// The pool is valid until Close() is called.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// Conn returns the acquired connection for the session.
// Every statement of the load runs on this connection.
// The connection is valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
//
// Resource cleanup order:
//  1. Release the acquired connection back to the pool
//  2. Close the connection pool
//
// After calling Close(), the Session should not be used.
func (s *Session) Close() error {
	// Release connection first (if not nil)
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	// Close pool second (if not nil)
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
