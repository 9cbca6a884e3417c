package kube

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"kubedash/pkg/logging"
)

// Poller refreshes the tabular panes on an interval.
type Poller struct {
	mu       sync.RWMutex
	client   *Client
	gen      int
	sel      *Selection
	out      chan<- Event
	interval time.Duration
	refresh  chan struct{}
}

// NewPoller returns a poller reading sel and writing to out.
func NewPoller(client *Client, sel *Selection, out chan<- Event, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		client:   client,
		sel:      sel,
		out:      out,
		interval: interval,
		refresh:  make(chan struct{}, 1),
	}
}

// SetClient replaces the client after a context switch and asks for an
// immediate refresh. It returns the new generation; events polled with the
// previous client carry an older one.
func (p *Poller) SetClient(c *Client) int {
	p.mu.Lock()
	p.client = c
	p.gen++
	gen := p.gen
	p.mu.Unlock()
	p.Refresh()
	return gen
}

// Client returns the current client.
func (p *Poller) Client() *Client {
	c, _ := p.current()
	return c
}

// Gen returns the current client generation.
func (p *Poller) Gen() int {
	_, gen := p.current()
	return gen
}

func (p *Poller) current() (*Client, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client, p.gen
}

// Refresh asks the poller to poll now instead of waiting for the next tick.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		p.Poll(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-p.refresh:
		}
	}
}

// Poll fetches every pane once. Failures are sent as Error events for the
// affected pane and do not stop the others.
func (p *Poller) Poll(ctx context.Context) {
	c, gen := p.current()
	if c == nil {
		return
	}
	snap := p.sel.Snapshot()

	var g errgroup.Group
	g.Go(func() error {
		t, err := c.PodTable(ctx, snap.Namespaces)
		t.Gen = gen
		p.emit(ctx, TargetPods, gen, t, err)
		return nil
	})
	g.Go(func() error {
		t, err := c.ConfigTable(ctx, snap.Namespaces)
		t.Gen = gen
		p.emit(ctx, TargetConfigs, gen, t, err)
		return nil
	})
	g.Go(func() error {
		lines, err := c.EventLines(ctx, snap.Namespaces)
		p.emit(ctx, TargetEvents, gen, Replace{Target: TargetEvents, Lines: lines, Gen: gen}, err)
		return nil
	})
	if len(snap.APIResources) > 0 {
		g.Go(func() error {
			lines, err := c.APILines(ctx, snap.APIResources, snap.Namespaces)
			p.emit(ctx, TargetAPI, gen, Replace{Target: TargetAPI, Lines: lines, Gen: gen}, err)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *Poller) emit(ctx context.Context, target Target, gen int, ev Event, err error) {
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Debug("Poller", "Refreshing %s failed: %v", target, err)
		ev = Error{Target: target, Err: err, Gen: gen}
	}
	send(ctx, p.out, ev)
}
