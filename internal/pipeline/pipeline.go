package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
	"github.com/couchcryptid/marine-bulletin-etl/internal/observability"
)

// Fetcher retrieves the reports of one cycle, BMS first.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Report, error)
}

// Renderer converts a raw report into the content to persist.
type Renderer interface {
	Render(ctx context.Context, report domain.Report) (domain.Rendition, error)
}

// Writer persists an artifact and returns its location.
type Writer interface {
	Write(ctx context.Context, artifact domain.Artifact) (string, error)
}

// Settings holds the cycle parameters that do not change between cycles.
type Settings struct {
	Zone       uint8
	Area       string
	OutputDirs map[domain.ReportKind]string
	Schedule   cron.Schedule
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Pipeline runs fetch-render-write cycles on a schedule, one at a time.
type Pipeline struct {
	fetcher  Fetcher
	renderer Renderer
	writer   Writer
	settings Settings
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool

	mu     sync.Mutex
	status Status
}

// Status summarizes the most recent cycles for the status endpoint.
type Status struct {
	Zone          uint8     `json:"zone"`
	Area          string    `json:"area,omitempty"`
	Cycles        int       `json:"cycles"`
	LastCycleAt   time.Time `json:"last_cycle_at,omitzero"`
	LastSuccessAt time.Time `json:"last_success_at,omitzero"`
	LastError     string    `json:"last_error,omitempty"`
	LastArtifacts int       `json:"last_artifacts"`
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, r Renderer, w Writer, settings Settings, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	clock := settings.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		fetcher:  f,
		renderer: r,
		writer:   w,
		settings: settings,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a cycle has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no fetch cycle has succeeded yet")
	}
	return nil
}

// Status returns a snapshot of the latest cycle outcome.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.status
	st.Zone = p.settings.Zone
	st.Area = p.settings.Area
	return st
}

func (p *Pipeline) record(at time.Time, written int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Cycles++
	p.status.LastCycleAt = at
	p.status.LastArtifacts = written
	if err != nil {
		p.status.LastError = err.Error()
		return
	}
	p.status.LastError = ""
	p.status.LastSuccessAt = at
}

// Run executes a first cycle immediately, then one cycle per schedule
// activation until the context is cancelled. Activations are counted from the
// previous activation, not from the end of the previous cycle; when a cycle
// overruns one or more activations the missed cycles start back to back. A
// failed cycle is logged and never stops the loop.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "zone", p.settings.Zone)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	tick := p.clock.Now()
	for {
		// A started cycle always runs to completion; shutdown only stops the wait.
		_ = p.RunCycle(context.WithoutCancel(ctx))

		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}

		tick = p.settings.Schedule.Next(tick)
		if tick.IsZero() {
			p.logger.Warn("schedule has no further activation, stopping")
			return nil
		}

		wait := tick.Sub(p.clock.Now())
		if wait < 0 {
			p.logger.Warn("cycle overran its activation", "activation", tick, "late_by", -wait)
		} else {
			p.logger.Debug("next cycle scheduled", "at", tick)
		}

		if !sleepWithContext(ctx, p.clock, wait) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// RunCycle performs one fetch-render-write cycle and records its outcome.
// Reports are processed in fetch order; the first error abandons the rest of
// the cycle.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	start := p.clock.Now()
	logger := p.logger.With("cycle_id", uuid.NewString())
	logger.Info("cycle started")

	written, err := p.cycle(ctx, logger, start)
	p.metrics.CycleDuration.Observe(p.clock.Since(start).Seconds())
	p.record(start, written, err)
	if err != nil {
		p.metrics.CyclesTotal.WithLabelValues("failure").Inc()
		logger.Error("cycle failed", "error", err, "artifacts", written)
		return err
	}

	p.metrics.CyclesTotal.WithLabelValues("success").Inc()
	p.metrics.LastSuccess.Set(float64(p.clock.Now().Unix()))
	p.ready.Store(true)
	logger.Info("cycle finished", "artifacts", written, "duration", p.clock.Since(start))
	return nil
}

func (p *Pipeline) cycle(ctx context.Context, logger *slog.Logger, at time.Time) (int, error) {
	reports, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}

	written := 0
	for _, report := range reports {
		rendition, err := p.renderer.Render(ctx, report)
		if err != nil {
			return written, err
		}

		dir, ok := p.settings.OutputDirs[report.Kind]
		if !ok {
			return written, fmt.Errorf("no output directory for %s", report.Kind)
		}

		path, err := p.writer.Write(ctx, domain.Artifact{
			Rendition: rendition,
			Zone:      p.settings.Zone,
			Dir:       dir,
			At:        at,
		})
		if err != nil {
			return written, fmt.Errorf("write %s: %w", report.Kind, err)
		}

		written++
		p.metrics.ArtifactsWritten.WithLabelValues(string(report.Kind), mode(rendition)).Inc()
		logger.Debug("report stored", "kind", report.Kind, "path", path)
	}
	return written, nil
}

func mode(r domain.Rendition) string {
	if r.Pretty {
		return "pretty"
	}
	return "raw"
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
