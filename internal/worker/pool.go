package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueClosed is returned when a job is submitted after Stop.
var ErrQueueClosed = errors.New("job queue closed")

// ErrQueueFull is returned when the job queue has no free slot.
var ErrQueueFull = errors.New("job queue full")

// Job represents a unit of work to be executed.
// Results are kept on the job itself; Execute only reports failure.
type Job interface {
	Execute(ctx context.Context) error // The method that performs the actual work
	ID() string                        // A unique identifier for the job
}

// Dispatcher manages a pool of workers and dispatches jobs to them.
type Dispatcher struct {
	MaxWorkers int
	JobQueue   chan Job // A buffered channel for incoming jobs

	logger *logrus.Entry
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(maxWorkers int, jobQueueSize int, logger *logrus.Entry) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		JobQueue:   make(chan Job, jobQueueSize),
		logger:     logger,
	}
}

// Run starts the workers. They stop once the queue is closed and drained.
// A cancelled ctx makes the remaining jobs fail fast with ctx.Err() passed
// through their Execute.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Debugf("Dispatcher starting with %d workers", d.MaxWorkers)
	for i := 1; i <= d.MaxWorkers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()
	for job := range d.JobQueue {
		log := d.logger.WithFields(logrus.Fields{"worker": id, "job": job.ID()})
		log.Debug("Started job")
		if err := job.Execute(ctx); err != nil {
			log.WithError(err).Warn("Job failed")
			continue
		}
		log.Debug("Finished job")
	}
}

// SubmitJob adds a job to the job queue without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.JobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits until every submitted job has finished.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.JobQueue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// RunAll executes jobs on a dispatcher sized for them and waits for all of
// them to finish.
func RunAll(ctx context.Context, maxWorkers int, logger *logrus.Entry, jobs ...Job) {
	d := NewDispatcher(maxWorkers, len(jobs), logger)
	d.Run(ctx)
	for _, job := range jobs {
		// The queue holds len(jobs) entries, so this cannot fail.
		_ = d.SubmitJob(job)
	}
	d.Stop()
}
