package repository

import "context"

// Tx is the base interface for transactional operations. Every write path in
// the engine (wager, claim, resolve) runs inside one of these; partial
// application on failure is forbidden.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
