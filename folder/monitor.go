// Copyright © 2026 dropbox-data-science authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package folder

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/AjitisAjit/dropbox-data-science/metrics"
	"github.com/AjitisAjit/dropbox-data-science/pkg/dropbox"
)

const defaultInterval = 10 * time.Second

// Sink receives the snapshot produced by each successful refresh. The
// delivered slice is a point-in-time copy and is never mutated by the
// monitor afterwards.
type Sink interface {
	Publish(ctx context.Context, snapshot []*Handle, cursor string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, snapshot []*Handle, cursor string) error

func (f SinkFunc) Publish(ctx context.Context, snapshot []*Handle, cursor string) error {
	return f(ctx, snapshot, cursor)
}

// Monitor polls a State at a fixed interval and publishes each refreshed
// snapshot to a sink. Refresh failures are logged and retried on the next
// tick; only reconciliation failures (or an exhausted retry budget) stop
// the loop. Not re-entrant.
type Monitor struct {
	state    *State
	sink     Sink
	limiter  *rate.Limiter
	interval time.Duration
	retries  int
	longpoll time.Duration
	log      zerolog.Logger
	id       string
	running  atomic.Bool
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithLogger sets the monitor's logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) MonitorOption {
	return func(m *Monitor) { m.log = log }
}

// WithInterval sets the delay between poll iterations. The delay applies
// whether or not the previous iteration succeeded, bounding the request
// rate against the backend.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.interval = d }
}

// WithRetries bounds the number of consecutive failed iterations before
// Run returns. The counter resets on success. Negative means unlimited,
// which is the default.
func WithRetries(n int) MonitorOption {
	return func(m *Monitor) { m.retries = n }
}

// WithLongpoll enables longpoll change detection with the given timeout.
// When the backend reports no changes the iteration skips the delta fetch
// entirely.
func WithLongpoll(timeout time.Duration) MonitorOption {
	return func(m *Monitor) { m.longpoll = timeout }
}

// NewMonitor creates a Monitor over state publishing to sink.
func NewMonitor(state *State, sink Sink, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		state:    state,
		sink:     sink,
		interval: defaultInterval,
		retries:  -1,
		log:      zerolog.Nop(),
		id:       uuid.NewString(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.interval <= 0 {
		m.interval = defaultInterval
	}
	m.limiter = rate.NewLimiter(rate.Every(m.interval), 1)
	return m
}

// Run polls until ctx is cancelled. Cancellation is checked at the top of
// each iteration and between paginated sub-calls, and returns nil: a
// stopped monitor is a clean shutdown. A ReconcileError or an exhausted
// retry budget returns the failure instead.
func (m *Monitor) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer m.running.Store(false)

	log := m.log.With().Str("watch_id", m.id).Str("path", m.state.Path()).Logger()
	log.Info().Dur("interval", m.interval).Msg("starting folder monitor")

	retries := m.retries
	for {
		if err := m.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				log.Debug().Msg("monitor shutting down")
				return nil
			}
			// Wait also fails when the delay cannot fit the context
			// deadline; that is a configuration problem, not a shutdown.
			return fmt.Errorf("wait for next poll: %w", err)
		}

		err := m.poll(ctx)
		if err == nil {
			retries = m.retries
			continue
		}
		if ctx.Err() != nil {
			log.Debug().Msg("monitor shutting down")
			return nil
		}

		var reconcileErr *ReconcileError
		if errors.As(err, &reconcileErr) {
			log.Error().Err(err).Msg("unrecoverable reconcile failure, stopping")
			return err
		}

		if m.retries >= 0 {
			if retries == 0 {
				log.Error().Err(err).Msg("retries exhausted, stopping")
				return err
			}
			retries--
		}
		log.Warn().Err(err).Msg("refresh failed, retrying next interval")
	}
}

// poll runs one iteration: optional longpoll gate, refresh, publish.
func (m *Monitor) poll(ctx context.Context) error {
	if m.longpoll > 0 && m.state.Cursor() != "" {
		changes, err := m.state.client.Longpoll(ctx, m.state.Cursor(), m.longpoll)
		if err != nil {
			if errors.Is(err, dropbox.ErrExpiredCursor) {
				return &ReconcileError{Path: m.state.Path(), Err: err}
			}
			return fmt.Errorf("longpoll failed: %w", err)
		}
		if !changes {
			return nil
		}
	}

	start := timeNow()
	if err := m.state.Refresh(ctx); err != nil {
		metrics.RefreshFailed()
		return err
	}
	metrics.RefreshSucceeded(time.Since(start))

	snapshot := m.state.Snapshot()
	metrics.SetSnapshotSize(m.state.Path(), len(snapshot))

	if err := m.sink.Publish(ctx, snapshot, m.state.Cursor()); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	metrics.SnapshotPublished()
	return nil
}

// Diff returns the handles present in next but absent from prev, keyed by
// path. Useful for sinks that only care about newly appeared files.
func Diff(prev, next []*Handle) []*Handle {
	seen := make(map[string]struct{}, len(prev))
	for _, h := range prev {
		seen[h.path] = struct{}{}
	}

	var added []*Handle
	for _, h := range next {
		if _, ok := seen[h.path]; !ok {
			added = append(added, h)
		}
	}
	return added
}
