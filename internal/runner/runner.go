// Package runner fans admixture solves out over a bounded pool of goroutines.
// Each job owns its solve; nothing is shared between jobs except the
// read-only source collection, so no locks are needed.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/g25mix/admixture"
	"github.com/katalvlaran/g25mix/coords"
	"github.com/katalvlaran/g25mix/internal/logging"
	"github.com/katalvlaran/g25mix/internal/metrics"
)

// ErrNoSources indicates a job without a source collection.
var ErrNoSources = errors.New("runner: job has no sources")

// Job is one target to model against a source collection.
type Job struct {
	ID      string // assigned a UUID when empty
	Target  coords.LabeledVector
	Sources *coords.Collection
}

// Outcome is the result of one Job, in the same position as the job.
type Outcome struct {
	JobID    string
	Target   string
	Labels   []string // source labels, aligned with Result.Weights
	Result   admixture.Result
	Duration time.Duration
	Err      error
}

// Runner executes jobs with a shared Solver.
type Runner struct {
	solver  admixture.Solver
	workers int
	timeout time.Duration
	log     logging.Logger
	metrics *metrics.Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds concurrent solves. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("runner: WithWorkers: n must be >= 1")
	}

	return func(r *Runner) { r.workers = n }
}

// WithJobTimeout sets a per-job deadline; 0 disables it. A timed-out job
// reports context.DeadlineExceeded while its solve finishes in the
// background (solves are bounded by their iteration caps).
func WithJobTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets the logger (default: no-op).
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records every solve in m (nil disables metrics).
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New returns a Runner using s for every job. Defaults: 1 worker, no
// timeout, no-op logger, no metrics.
func New(s admixture.Solver, opts ...Option) *Runner {
	r := &Runner{solver: s, workers: 1, log: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("runner")

	return r
}

// Run solves every job and returns outcomes in job order.
//
// Implementation:
//   - Stage 1: errgroup with SetLimit(workers); one goroutine per job.
//   - Stage 2: a job failure lands in its Outcome.Err and never cancels
//     siblings; goroutines always return nil.
//   - Stage 3: when ctx is cancelled no further jobs are scheduled; the
//     unscheduled ones carry ctx.Err() and Run returns it too.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	out := make([]Outcome, len(jobs))
	scheduled := 0

	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		if jobs[i].ID == "" {
			jobs[i].ID = uuid.NewString()
		}
		job := jobs[i]
		g.Go(func() error {
			out[i] = r.runOne(ctx, job)
			return nil
		})
		scheduled++
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := scheduled; i < len(jobs); i++ {
			out[i] = Outcome{JobID: jobs[i].ID, Target: jobs[i].Target.Label, Err: err}
		}
		r.log.Warn("run interrupted", logging.Int("scheduled", scheduled), logging.Int("jobs", len(jobs)), logging.Err(err))

		return out, err
	}

	return out, nil
}

// runOne solves a single job, honoring the per-job timeout.
func (r *Runner) runOne(ctx context.Context, job Job) Outcome {
	o := Outcome{JobID: job.ID, Target: job.Target.Label}
	log := r.log.With(logging.String("job", job.ID), logging.String("target", job.Target.Label))

	if job.Sources == nil || job.Sources.Len() == 0 {
		o.Err = ErrNoSources
		log.Warn("solve skipped", logging.Err(o.Err))
		r.metrics.Observe(metrics.Outcome{Algorithm: r.solver.Algorithm().String(), Err: o.Err})

		return o
	}
	o.Labels = job.Sources.Labels()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := r.metrics.Begin()
	start := time.Now()
	log.Debug("solve started", logging.Int("sources", job.Sources.Len()))

	type solved struct {
		res admixture.Result
		err error
	}
	ch := make(chan solved, 1)
	go func() {
		res, err := r.solver.Solve(job.Target.Coords, job.Sources.Coords())
		ch <- solved{res: res, err: err}
	}()

	select {
	case s := <-ch:
		o.Result, o.Err = s.res, s.err
	case <-ctx.Done():
		o.Err = ctx.Err()
	}
	o.Duration = time.Since(start)

	done(metrics.Outcome{
		Algorithm:  r.solver.Algorithm().String(),
		Duration:   o.Duration,
		Iterations: o.Result.Iterations,
		Distance:   o.Result.Distance,
		Resets:     o.Result.Resets,
		Err:        o.Err,
	})
	if o.Err != nil {
		o.Err = fmt.Errorf("job %s (%s): %w", job.ID, job.Target.Label, o.Err)
		log.Warn("solve failed", logging.Err(o.Err), logging.Duration("took", o.Duration))

		return o
	}
	log.Info("solve finished",
		logging.Float64("distance", o.Result.Distance),
		logging.Int("iterations", o.Result.Iterations),
		logging.Bool("converged", o.Result.Converged),
		logging.Duration("took", o.Duration),
	)

	return o
}

// JobsFor builds one job per target label against sources. An empty labels
// list selects every target in collection order.
//
// Errors:
//   - an error naming the first label missing from targets.
func JobsFor(targets *coords.Collection, labels []string, sources *coords.Collection) ([]Job, error) {
	if len(labels) == 0 {
		labels = targets.Labels()
	}
	jobs := make([]Job, 0, len(labels))
	for _, l := range labels {
		v, ok := targets.Get(l)
		if !ok {
			return nil, fmt.Errorf("runner: unknown target %q", l)
		}
		jobs = append(jobs, Job{Target: v, Sources: sources})
	}

	return jobs, nil
}
