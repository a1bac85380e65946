// Package poll decides when job state is re-fetched from the service.
//
// A Controller owns one polling target: either the whole job collection
// or a single job. It fetches once on start (the view mount), then on a
// fixed interval, with at most one fetch in flight at a time. Ticks that
// fire while a fetch is outstanding are skipped, not queued. Results are
// tagged with the target and generation they were issued for; a result
// that arrives after the target changed or the controller stopped is
// discarded without observable effect.
package poll

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/progit1914/TranscriptionSaaS-App/internal/api"
)

// TargetJobs is the Result.Target value for collection mode.
const TargetJobs = "jobs"

// Default polling intervals. The collection view refreshes every 5
// seconds for as long as it is mounted; a single job is re-checked
// every 2 seconds while it is still pending or processing.
const (
	CollectionInterval = 5 * time.Second
	JobInterval        = 2 * time.Second
)

// Fetcher is the slice of the API client the controller needs.
type Fetcher interface {
	ListJobs(ctx context.Context) ([]api.Job, error)
	GetJob(ctx context.Context, jobID string) (*api.Job, error)
}

// Result is one completed fetch. Exactly one of Jobs or Job is set on
// success; Err is set on failure. The previous known-good data is the
// consumer's to keep — a failed fetch never clears it.
type Result struct {
	Target string
	Jobs   []api.Job
	Job    *api.Job
	Err    error
}

// Config holds controller configuration.
type Config struct {
	// Fetcher performs the actual API calls.
	Fetcher Fetcher

	// Interval between poll ticks. Defaults to CollectionInterval or
	// JobInterval depending on mode.
	Interval time.Duration

	// OnResult receives every accepted fetch result. It is never
	// invoked after Stop returns, and must not call back into the
	// controller.
	OnResult func(Result)

	// Limiter bounds overall request volume, covering manual refreshes
	// as well as timer ticks. Defaults to one request per second.
	Limiter *rate.Limiter
}

// Controller runs the polling loop for one target.
type Controller struct {
	fetcher    Fetcher
	interval   time.Duration
	limiter    *rate.Limiter
	onResult   func(Result)
	collection bool

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	target   string
	gen      int
	inFlight bool
	stopped  bool
	done     chan struct{}
}

// NewCollection creates a controller that polls the full job list.
func NewCollection(cfg Config) *Controller {
	return newController(cfg, TargetJobs, true, CollectionInterval)
}

// NewJob creates a controller that follows a single job. It stops
// itself once the job reaches a terminal status.
func NewJob(cfg Config, jobID string) *Controller {
	return newController(cfg, jobID, false, JobInterval)
}

func newController(cfg Config, target string, collection bool, defaultInterval time.Duration) *Controller {
	if cfg.Interval == 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Limiter == nil {
		cfg.Limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		fetcher:    cfg.Fetcher,
		interval:   cfg.Interval,
		limiter:    cfg.Limiter,
		onResult:   cfg.OnResult,
		collection: collection,
		ctx:        ctx,
		cancel:     cancel,
		target:     target,
		done:       make(chan struct{}),
	}
}

// Start fetches immediately and begins the tick loop. Call it once.
func (c *Controller) Start() {
	c.kick()
	go c.loop()
}

func (c *Controller) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.kick()
		}
	}
}

// Refresh requests an immediate fetch, subject to the same in-flight
// and rate-limit rules as a timer tick.
func (c *Controller) Refresh() {
	c.kick()
}

// SetJob switches a single-job controller to a new target. The result
// of any fetch still outstanding for the old target is discarded.
func (c *Controller) SetJob(jobID string) {
	c.mu.Lock()
	if c.collection || c.stopped || jobID == c.target {
		c.mu.Unlock()
		return
	}
	c.target = jobID
	c.gen++
	c.inFlight = false
	c.mu.Unlock()

	c.kick()
}

// Stop ends polling. It is idempotent, and once it returns no further
// OnResult call will be made — a fetch still in flight completes
// against a dead generation and is dropped.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.gen++
	c.cancel()
	close(c.done)
}

// kick launches a fetch unless one is already outstanding or the rate
// limiter says no. Skipped ticks are flow control, not errors.
func (c *Controller) kick() {
	c.mu.Lock()
	if c.stopped || c.inFlight {
		c.mu.Unlock()
		return
	}
	if !c.limiter.Allow() {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	gen := c.gen
	target := c.target
	c.mu.Unlock()

	go c.fetch(gen, target)
}

func (c *Controller) fetch(gen int, target string) {
	res := Result{Target: target}
	if c.collection {
		res.Jobs, res.Err = c.fetcher.ListJobs(c.ctx)
	} else {
		res.Job, res.Err = c.fetcher.GetJob(c.ctx, target)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || gen != c.gen {
		// Result for a stale target or a stopped controller.
		return
	}
	c.inFlight = false

	if c.onResult != nil {
		// Delivered under the lock so Stop cannot race a late result
		// past the view.
		c.onResult(res)
	}

	if !c.collection && res.Err == nil && res.Job != nil && res.Job.Status.Terminal() {
		c.stopLocked()
	}
}
