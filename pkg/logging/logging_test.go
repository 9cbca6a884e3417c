package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: " error ", want: LevelError},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Test", "hidden %d", 1)
	Info("Test", "shown %d", 2)
	Error("Test", errors.New("boom"), "failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "subsystem=Test")
	assert.Contains(t, out, "error=boom")
}

func TestInitForTUI(t *testing.T) {
	var buf bytes.Buffer
	ch := InitForTUI(LevelInfo, &buf)
	defer CloseTUIChannel()
	require.NotNil(t, ch)

	Debug("Kube", "filtered")
	Warn("Kube", "poll took %s", time.Second)

	select {
	case e := <-ch:
		assert.Equal(t, LevelWarn, e.Level)
		assert.Equal(t, "Kube", e.Subsystem)
		assert.Equal(t, "poll took 1s", e.Message)
	case <-time.After(time.Second):
		t.Fatal("no log entry received")
	}
	assert.Empty(t, ch)
	assert.Contains(t, buf.String(), "poll took 1s")
}

func TestInitCommon_DropsWhenFull(t *testing.T) {
	ch := Initcommon("tui", LevelDebug, nil, 1)
	defer CloseTUIChannel()

	Info("Test", "one")
	Info("Test", "two")
	Info("Test", "three")

	assert.Len(t, ch, 1)
	assert.Equal(t, 2, Dropped())
}

func TestLogEntry_Format(t *testing.T) {
	e := LogEntry{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelError,
		Subsystem: "Kube",
		Message:   "stream closed",
		Err:       errors.New("EOF"),
	}
	got := e.Format()
	assert.True(t, strings.HasPrefix(got, "03:04:05 \x1b[31mERROR\x1b[0m "))
	assert.True(t, strings.HasSuffix(got, "[Kube] stream closed: EOF"))
}
