package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminator(t *testing.T) {
	tests := []struct {
		name       string
		fn         func() error
		terminated bool
		reason     string
	}{
		{"clean exit", func() error { return nil }, false, ""},
		{"cancelled", func() error { return context.Canceled }, false, ""},
		{"wrapped cancel", func() error { return errors.Join(errors.New("stop"), context.Canceled) }, false, ""},
		{"error", func() error { return errors.New("boom") }, true, "worker: boom"},
		{"panic", func() error { panic("oops") }, true, "worker panicked: oops"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := NewTerminator()
			term.Go("worker", tt.fn)
			term.Wait()
			assert.Equal(t, tt.terminated, term.Terminated())
			if tt.reason == "" {
				assert.NoError(t, term.Reason())
			} else {
				require.Error(t, term.Reason())
				assert.Equal(t, tt.reason, term.Reason().Error())
			}
		})
	}
}

func TestTerminateKeepsFirstReason(t *testing.T) {
	term := NewTerminator()
	term.Terminate(errors.New("first"))
	term.Terminate(errors.New("second"))
	assert.True(t, term.Terminated())
	assert.EqualError(t, term.Reason(), "first")
}

func TestTick(t *testing.T) {
	msg := Tick(time.Millisecond)()
	_, ok := msg.(TickMsg)
	assert.True(t, ok)
}
