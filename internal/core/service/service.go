package service

import (
	"errors"
	"fmt"

	"bookban-guard/internal/core/ports"
	"bookban-guard/internal/evict"
	"bookban-guard/internal/observability"
	"bookban-guard/internal/scan"
	"bookban-guard/internal/view"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// ensure implementation
var _ ports.Checker = (*Checker)(nil)

// Checker scans container trees, evicts books over the budget and commits
// the result. Calls are synchronous and independent of each other.
type Checker struct {
	notifier ports.Notifier
	evictor  *evict.Evictor
	budget   int
	logger   hclog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithBudget sets the byte budget. Defaults to evict.DefaultBudget.
func WithBudget(budget int) Option {
	return func(c *Checker) {
		c.budget = budget
	}
}

// WithLogger sets the logger. Defaults to a null logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithEvictor replaces the default LargestFirst evictor.
func WithEvictor(e *evict.Evictor) Option {
	return func(c *Checker) {
		c.evictor = e
	}
}

func New(notifier ports.Notifier, opts ...Option) *Checker {
	c := &Checker{
		notifier: notifier,
		evictor:  evict.New(),
		budget:   evict.DefaultBudget,
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report describes one check. BytesAfter equals BytesBefore when nothing
// was removed.
type Report struct {
	Removed     int
	BytesBefore int
	BytesAfter  int
	Budget      int
	Exhausted   bool
}

// RemovalMessage is the notification sent after removing n books.
func RemovalMessage(n int) string {
	return fmt.Sprintf("Removed %d malicious books", n)
}

// CheckItem checks the inventory stored inside item. onRemoved is kept for
// the host contract; notification goes through the Notifier instead.
func (c *Checker) CheckItem(subject uuid.UUID, item ports.Item, onRemoved func()) (int, error) {
	if item == nil || !item.IsContainer() {
		return 0, nil
	}
	observability.ChecksTotal.WithLabelValues("item").Inc()

	slots, writeBack, err := item.Unwrap()
	if err != nil {
		c.logger.Error("unwrap checked item", "subject", subject, "error", err)
		return 0, fmt.Errorf("unwrap item: %w", err)
	}
	rep, err := c.run(subject, view.NewSingle(slots, writeBack))
	return rep.Removed, err
}

// CheckInventory scans the view, evicts and, if anything was removed,
// notifies the subject once and flushes every touched view.
func (c *Checker) CheckInventory(subject uuid.UUID, root ports.ContainerView) (int, error) {
	rep, err := c.Check(subject, root)
	return rep.Removed, err
}

// Check is CheckInventory with the full accounting of the pass.
func (c *Checker) Check(subject uuid.UUID, root ports.ContainerView) (Report, error) {
	if root == nil {
		return Report{Budget: c.budget}, nil
	}
	observability.ChecksTotal.WithLabelValues("inventory").Inc()
	return c.run(subject, root)
}

func (c *Checker) run(subject uuid.UUID, root ports.ContainerView) (Report, error) {
	rep := Report{Budget: c.budget}
	res, err := scan.Scan(root)
	if err != nil {
		c.logger.Error("scan failed", "subject", subject, "error", err)
		return rep, err
	}
	observability.ScannedBytes.Observe(float64(res.TotalCost))
	c.logger.Debug("scanned", "subject", subject, "total_bytes", res.TotalCost,
		"candidates", len(res.Candidates), "views", len(res.Touched))

	rep.BytesBefore = res.TotalCost
	out := c.evictor.Evict(res, c.budget)
	rep.BytesAfter = res.TotalCost
	rep.Removed = out.Removed
	rep.Exhausted = out.Exhausted
	if out.Exhausted {
		observability.EvictionExhaustedTotal.Inc()
		c.logger.Warn("eviction ran out of candidates over budget",
			"subject", subject, "remaining_bytes", res.TotalCost, "budget", c.budget)
	}
	if out.Removed == 0 {
		return rep, nil
	}

	observability.RemovalsTotal.Add(float64(out.Removed))
	c.logger.Info("removed books over budget", "subject", subject, "removed", out.Removed,
		"bytes_before", rep.BytesBefore, "bytes_after", rep.BytesAfter, "budget", c.budget)
	c.notifier.Notify(subject, RemovalMessage(out.Removed))

	if err := c.flush(res.Touched); err != nil {
		c.logger.Error("flush failed", "subject", subject, "error", err)
		return rep, err
	}
	return rep, nil
}

// flush commits every view once and keeps going past failures. Views are
// flushed in reverse discovery order so nested views write back into their
// parents before the parents themselves are written.
func (c *Checker) flush(views []ports.ContainerView) error {
	var errs []error
	for i := len(views) - 1; i >= 0; i-- {
		v := views[i]
		if err := v.Flush(); err != nil {
			observability.FlushesTotal.WithLabelValues("error").Inc()
			errs = append(errs, fmt.Errorf("flush view %d: %w", i, err))
			continue
		}
		observability.FlushesTotal.WithLabelValues("success").Inc()
	}
	return errors.Join(errs...)
}
