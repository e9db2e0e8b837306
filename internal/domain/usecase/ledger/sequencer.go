package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
)

// DefaultIdleTimeout is how long a user's worker waits for more work before exiting
const DefaultIdleTimeout = 30 * time.Second

const queueSize = 64

// Sequencer runs credit-changing work for the same user one at a time, in
// arrival order. Work for different users runs in parallel. Each user gets a
// queue and a worker goroutine on first use; the worker exits once its queue
// has been idle for the configured timeout.
type Sequencer struct {
	logger      coreport.Logger
	idleTimeout time.Duration

	mu      sync.Mutex
	queues  map[uint64]*userQueue
	closed  bool
	stop    chan struct{}
	workers sync.WaitGroup
}

type userQueue struct {
	jobs chan *job
	// pending counts jobs that were accepted and not yet finished, including
	// jobs whose sender is still blocked on the channel
	pending int
}

type job struct {
	ctx    context.Context
	fn     func(ctx context.Context) error
	result chan error
}

// NewSequencer creates a sequencer; a non-positive idleTimeout uses DefaultIdleTimeout
func NewSequencer(logger coreport.Logger, idleTimeout time.Duration) *Sequencer {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Sequencer{
		logger:      logger,
		idleTimeout: idleTimeout,
		queues:      make(map[uint64]*userQueue),
		stop:        make(chan struct{}),
	}
}

// Do runs fn on the user's queue and waits for its result.
// A job whose context is cancelled before it starts is skipped.
func (s *Sequencer) Do(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error {
	queue, err := s.acquire(userID)
	if err != nil {
		return err
	}

	j := &job{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case queue.jobs <- j:
	case <-ctx.Done():
		s.release(queue)
		s.logger.Warn("Context canceled while enqueueing credit operation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		s.logger.Warn("Context canceled while waiting for credit operation", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// acquire returns the user's queue, starting a worker if needed, and counts one pending job
func (s *Sequencer) acquire(userID uint64) (*userQueue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errs.ErrShuttingDown
	}

	queue, ok := s.queues[userID]
	if !ok {
		queue = &userQueue{jobs: make(chan *job, queueSize)}
		s.queues[userID] = queue
		s.workers.Add(1)
		go s.run(userID, queue)

		s.logger.Debug("Started credit queue worker", map[string]any{
			"user_id": userID,
		})
	}
	queue.pending++
	return queue, nil
}

func (s *Sequencer) release(queue *userQueue) {
	s.mu.Lock()
	queue.pending--
	s.mu.Unlock()
}

// retire removes an idle queue; it reports false when work is still pending
func (s *Sequencer) retire(userID uint64, queue *userQueue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if queue.pending > 0 {
		return false
	}
	delete(s.queues, userID)
	return true
}

// run is the worker goroutine for one user's queue
func (s *Sequencer) run(userID uint64, queue *userQueue) {
	defer s.workers.Done()

	idle := time.NewTimer(s.idleTimeout)
	defer idle.Stop()
	stop := s.stop

	for {
		select {
		case j := <-queue.jobs:
			j.result <- s.execute(userID, j)
			s.release(queue)

			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(s.idleTimeout)

		case <-idle.C:
			if s.retire(userID, queue) {
				s.logger.Debug("Stopped idle credit queue worker", map[string]any{
					"user_id": userID,
				})
				return
			}
			idle.Reset(s.idleTimeout)

		case <-stop:
			if s.retire(userID, queue) {
				return
			}
			// drain what is left; the idle timer still applies
			stop = nil
		}
	}
}

// execute runs one job, converting a panic into an internal error
func (s *Sequencer) execute(userID uint64, j *job) (err error) {
	if ctxErr := j.ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("Panic recovered in credit operation", map[string]any{
				"user_id": userID,
				"panic":   fmt.Sprint(p),
			})
			err = errs.ErrInternalServer
		}
	}()

	return j.fn(j.ctx)
}

// ActiveQueues returns the number of users with a live worker
func (s *Sequencer) ActiveQueues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues)
}

// Shutdown rejects new work and waits for queued work to finish or ctx to expire
func (s *Sequencer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.stop)
	s.mu.Unlock()

	s.logger.Info("Shutting down credit sequencer", nil)

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Credit sequencer shut down successfully", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ coreport.Sequencer = (*Sequencer)(nil)
