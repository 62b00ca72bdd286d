package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMaxConnections caps the pool; every API request holds at most one
	// connection and market transactions are short.
	DefaultMaxConnections = 25
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
	// DefaultMaxConnIdleTime is how long an idle connection is kept
	DefaultMaxConnIdleTime = 5 * time.Minute
	// DefaultMaxConnLifetime bounds a connection's total age
	DefaultMaxConnLifetime = 30 * time.Minute
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)
