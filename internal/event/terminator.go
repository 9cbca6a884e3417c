// Package event holds the messages and goroutine supervision shared by the
// UI loop and the background producers.
package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kubedash/pkg/logging"
)

// TickMsg is delivered on every UI tick.
type TickMsg time.Time

// Tick schedules the next TickMsg after d.
func Tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Terminator supervises producer goroutines. A panic or unexpected error in
// any of them raises the flag, which the UI checks on every tick.
type Terminator struct {
	flag   atomic.Bool
	mu     sync.Mutex
	reason error
	wg     sync.WaitGroup
}

// NewTerminator returns a lowered terminator.
func NewTerminator() *Terminator {
	return &Terminator{}
}

// Go runs fn in a goroutine. A panic or an error other than a context
// cancellation terminates the program.
func (t *Terminator) Go(name string, fn func() error) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%s panicked: %v", name, r)
				logging.Error("Terminator", err, "Goroutine crashed\n%s", debug.Stack())
				t.Terminate(err)
			}
		}()
		err := fn()
		if err == nil || errors.Is(err, context.Canceled) {
			logging.Debug("Terminator", "%s finished", name)
			return
		}
		logging.Error("Terminator", err, "%s failed", name)
		t.Terminate(fmt.Errorf("%s: %w", name, err))
	}()
}

// Terminate raises the flag. The first reason is kept.
func (t *Terminator) Terminate(reason error) {
	t.mu.Lock()
	if t.reason == nil {
		t.reason = reason
	}
	t.mu.Unlock()
	t.flag.Store(true)
}

// Terminated reports whether the flag is raised.
func (t *Terminator) Terminated() bool {
	return t.flag.Load()
}

// Reason returns why the terminator was raised, if it was.
func (t *Terminator) Reason() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

// Wait blocks until every goroutine started by Go has returned.
func (t *Terminator) Wait() {
	t.wg.Wait()
}
