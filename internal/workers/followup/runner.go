package followup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"leaseflex/internal/ports"
)

// Step is one reminder in the drip sequence, sent Delay after the offer was
// created.
type Step struct {
	Number int
	Delay  time.Duration
}

// DefaultSchedule sends reminders one, four and ten days after the quote.
func DefaultSchedule() []Step {
	return []Step{
		{Number: 1, Delay: 24 * time.Hour},
		{Number: 2, Delay: 4 * 24 * time.Hour},
		{Number: 3, Delay: 10 * 24 * time.Hour},
	}
}

// Recorder receives delivery metrics. *observability.Metrics implements it.
type Recorder interface {
	FollowupEmitted(step int)
}

type nopRecorder struct{}

func (nopRecorder) FollowupEmitted(int) {}

// DefaultMinGap is the least time between two reminders to the same offer.
const DefaultMinGap = 24 * time.Hour

type Runner struct {
	repo      ports.FollowupRepository
	events    ports.EventPublisher
	schedule  []Step
	minGap    time.Duration
	batchSize int
	metrics   Recorder
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Runner)

func WithSchedule(steps []Step) Option  { return func(r *Runner) { r.schedule = steps } }
func WithMinGap(d time.Duration) Option { return func(r *Runner) { r.minGap = d } }
func WithBatchSize(n int) Option        { return func(r *Runner) { r.batchSize = n } }
func WithMetrics(m Recorder) Option     { return func(r *Runner) { r.metrics = m } }
func WithLogger(l *slog.Logger) Option  { return func(r *Runner) { r.log = l } }
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func New(repo ports.FollowupRepository, events ports.EventPublisher, opts ...Option) *Runner {
	r := &Runner{
		repo:      repo,
		events:    events,
		schedule:  DefaultSchedule(),
		minGap:    DefaultMinGap,
		batchSize: 50,
		metrics:   nopRecorder{},
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls for due reminders every interval and hands them to concurrency
// workers. It blocks until ctx is cancelled and the workers have drained.
func (r *Runner) Run(ctx context.Context, concurrency int, interval time.Duration) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.FollowupJob, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for job := range jobsCh {
				r.deliver(ctx, idx, job)
			}
		}(i)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			close(jobsCh)
			wg.Wait()
			return
		case <-ticker.C:
			r.dispatch(ctx, func(job ports.FollowupJob) { jobsCh <- job })
		}
	}
}

// ProcessDue claims one batch per step and delivers it on the calling
// goroutine, returning how many reminders were delivered.
func (r *Runner) ProcessDue(ctx context.Context) int {
	delivered := 0
	r.dispatch(ctx, func(job ports.FollowupJob) {
		if r.deliver(ctx, 0, job) {
			delivered++
		}
	})
	return delivered
}

// dispatch claims each step with the same stamp, so an offer that is due for
// several steps at once gets only the earliest per pass.
func (r *Runner) dispatch(ctx context.Context, send func(ports.FollowupJob)) {
	now := r.now()
	for _, step := range r.schedule {
		jobs, err := r.repo.ClaimDue(ctx, ports.FollowupClaim{
			Step:           step.Number,
			CreatedBefore:  now.Add(-step.Delay),
			LastSentBefore: now.Add(-r.minGap),
			At:             now,
			Limit:          r.batchSize,
		})
		if err != nil {
			r.log.ErrorContext(ctx, "followup claim failed", "step", step.Number, "error", err)
			continue
		}
		for _, job := range jobs {
			send(job)
		}
	}
}

func (r *Runner) deliver(ctx context.Context, worker int, job ports.FollowupJob) bool {
	evt := ports.NewOfferEvent(ports.EventOfferFollowupDue, job.OfferID, r.now(), map[string]any{
		"step":  job.Step,
		"email": job.Email,
	})
	if err := r.events.Publish(ctx, evt); err != nil {
		r.log.WarnContext(ctx, "followup delivery failed",
			"worker", worker,
			"offer_id", job.OfferID,
			"step", job.Step,
			"error", err,
		)
		if err := r.repo.Release(context.WithoutCancel(ctx), job); err != nil {
			r.log.ErrorContext(ctx, "followup release failed", "offer_id", job.OfferID, "error", err)
		}
		return false
	}
	r.metrics.FollowupEmitted(job.Step)
	return true
}
