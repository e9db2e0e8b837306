package core

import "context"

// Sequencer runs work for one user at a time, in arrival order
type Sequencer interface {
	// Do runs fn on the user's queue and returns its error.
	//
	// Possible errors:
	//   - errs.ErrShuttingDown: the sequencer no longer accepts work
	//   - ctx.Err(): the caller gave up before fn finished
	Do(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error
}
