package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()

	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	buf := &bytes.Buffer{}
	return New(buf, "sample", zerolog.InfoLevel), buf
}

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *Logger)
		want string
	}{
		{name: "success", log: func(l *Logger) { l.Success("copied") }, want: "✅ copied\n"},
		{name: "warning", log: func(l *Logger) { l.Warning("careful") }, want: "⚠️  careful\n"},
		{name: "error", log: func(l *Logger) { l.Error("broke") }, want: "❌ broke\n"},
		{name: "info", log: func(l *Logger) { l.Info("fyi") }, want: "ℹ️  fyi\n"},
		{name: "infof", log: func(l *Logger) { l.Infof("got %d", 3) }, want: "ℹ️  got 3\n"},
		{name: "successf", log: func(l *Logger) { l.Successf("%s done", "copy") }, want: "✅ copy done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferLogger(t)
			tt.log(l)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestHeader(t *testing.T) {
	l, buf := newBufferLogger(t)
	l.Header("starting up")

	out := buf.String()
	assert.Contains(t, out, "sample", "header should show the tool name")
	assert.Contains(t, out, "starting up")
}

func TestContextRoundTrip(t *testing.T) {
	l, _ := newBufferLogger(t)
	ctx := NewContext(context.Background(), l)

	got := FromContext(ctx)
	require.Same(t, l, got)
}

func TestFromContext_MissingPanics(t *testing.T) {
	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}
