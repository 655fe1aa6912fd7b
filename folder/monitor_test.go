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
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/mock"

	"github.com/AjitisAjit/dropbox-data-science/pkg/dropbox"
)

const testInterval = 10 * time.Millisecond

func TestMonitor_PublishesSnapshotEachPoll(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return([]dropbox.Entry{fileEntry("/docs/a.txt", "h1")}, "c1", false, nil).Once()
	m.On("ListFolderContinue", mock.Anything, "c1").
		Return(nil, "c1", false, nil).Maybe()

	published := make(chan []string, 16)
	sink := SinkFunc(func(_ context.Context, snapshot []*Handle, cursor string) error {
		published <- snapshotPaths(snapshot)
		return nil
	})

	monitor := NewMonitor(NewState(m, "/docs"), sink, WithInterval(testInterval))

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	is.Equal(<-published, []string{"/docs/a.txt"})
	// An empty delta still publishes the (unchanged) snapshot.
	is.Equal(<-published, []string{"/docs/a.txt"})

	cancel()
	is.NoErr(<-done)
}

func TestMonitor_ContinuesAfterTransportError(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return(nil, "", false, fmt.Errorf("request failed: timeout")).Once()
	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return([]dropbox.Entry{fileEntry("/docs/a.txt", "h1")}, "c1", false, nil).Once()
	m.On("ListFolderContinue", mock.Anything, "c1").
		Return(nil, "c1", false, nil).Maybe()

	published := make(chan []string, 16)
	sink := SinkFunc(func(_ context.Context, snapshot []*Handle, _ string) error {
		published <- snapshotPaths(snapshot)
		return nil
	})

	monitor := NewMonitor(NewState(m, "/docs"), sink, WithInterval(testInterval))

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	is.Equal(<-published, []string{"/docs/a.txt"})

	cancel()
	is.NoErr(<-done)
}

func TestMonitor_StopsOnReconcileError(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return([]dropbox.Entry{fileEntry("/docs/a.txt", "h1")}, "c1", false, nil).Once()
	m.On("ListFolderContinue", mock.Anything, "c1").
		Return(nil, "", false, dropbox.ErrExpiredCursor).Once()

	sink := SinkFunc(func(context.Context, []*Handle, string) error { return nil })
	monitor := NewMonitor(NewState(m, "/docs"), sink, WithInterval(testInterval))

	err := monitor.Run(ctx)
	var reconcileErr *ReconcileError
	is.True(errors.As(err, &reconcileErr))
}

func TestMonitor_RetryBudgetExhausted(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return(nil, "", false, fmt.Errorf("request failed: timeout")).Twice()

	sink := SinkFunc(func(context.Context, []*Handle, string) error { return nil })
	monitor := NewMonitor(NewState(m, "/docs"), sink, WithInterval(testInterval), WithRetries(1))

	err := monitor.Run(ctx)
	var folderErr *FolderError
	is.True(errors.As(err, &folderErr))
}

func TestMonitor_NotReentrant(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return([]dropbox.Entry{fileEntry("/docs/a.txt", "h1")}, "c1", false, nil).Once()

	published := make(chan struct{}, 1)
	sink := SinkFunc(func(context.Context, []*Handle, string) error {
		published <- struct{}{}
		return nil
	})

	// A long interval parks the loop in the limiter after the first poll.
	monitor := NewMonitor(NewState(m, "/docs"), sink, WithInterval(time.Hour))

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	<-published
	is.True(errors.Is(monitor.Run(ctx), ErrAlreadyRunning))

	cancel()
	is.NoErr(<-done)
}

func TestMonitor_IntervalBeyondDeadlineIsAnError(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return([]dropbox.Entry{fileEntry("/docs/a.txt", "h1")}, "c1", false, nil).Once()

	published := make(chan struct{}, 1)
	sink := SinkFunc(func(context.Context, []*Handle, string) error {
		published <- struct{}{}
		return nil
	})

	// The second wait can never fit the remaining deadline; the limiter
	// reports that immediately, before the context itself expires.
	monitor := NewMonitor(NewState(m, "/docs"), sink, WithInterval(time.Hour))

	err := monitor.Run(ctx)
	<-published
	is.True(err != nil)
	is.True(!errors.Is(err, ErrAlreadyRunning))
}

func TestMonitor_LongpollGatesDeltaFetch(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := dropbox.NewMockClient(t)

	m.On("ListFolder", mock.Anything, "/docs", false, 0).
		Return([]dropbox.Entry{fileEntry("/docs/a.txt", "h1")}, "c1", false, nil).Once()
	// First longpoll reports no changes: no delta fetch, no publish.
	m.On("Longpoll", mock.Anything, "c1", 30*time.Second).Return(false, nil).Once()
	m.On("Longpoll", mock.Anything, "c1", 30*time.Second).Return(true, nil).Once()
	m.On("ListFolderContinue", mock.Anything, "c1").
		Return([]dropbox.Entry{fileEntry("/docs/b.txt", "h2")}, "c2", false, nil).Once()
	m.On("Longpoll", mock.Anything, "c2", 30*time.Second).Return(false, nil).Maybe()

	published := make(chan []string, 16)
	sink := SinkFunc(func(_ context.Context, snapshot []*Handle, _ string) error {
		published <- snapshotPaths(snapshot)
		return nil
	})

	monitor := NewMonitor(NewState(m, "/docs"), sink,
		WithInterval(testInterval), WithLongpoll(30*time.Second))

	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	is.Equal(<-published, []string{"/docs/a.txt"})
	is.Equal(<-published, []string{"/docs/a.txt", "/docs/b.txt"})

	cancel()
	is.NoErr(<-done)
}

func TestDiff(t *testing.T) {
	is := is.New(t)
	m := dropbox.NewMockClient(t)

	a := NewHandle(m, "/docs/a.txt")
	b := NewHandle(m, "/docs/b.txt")
	c := NewHandle(m, "/docs/c.txt")

	is.Equal(snapshotPaths(Diff(nil, []*Handle{a, b})), []string{"/docs/a.txt", "/docs/b.txt"})
	is.Equal(snapshotPaths(Diff([]*Handle{a, b}, []*Handle{a, b, c})), []string{"/docs/c.txt"})
	is.Equal(len(Diff([]*Handle{a, b}, []*Handle{a})), 0)
}
