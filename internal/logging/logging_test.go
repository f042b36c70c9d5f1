package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		format  string
		level   string
		wantErr bool
		want    string
	}{
		{name: "slog text default", want: "msg=hello"},
		{name: "slog json", backend: "slog", format: "json", want: `"msg":"hello"`},
		{name: "zerolog", backend: "zerolog", level: "debug", want: `"message":"hello"`},
		{name: "bad backend", backend: "log4go", wantErr: true},
		{name: "bad format", format: "xml", wantErr: true},
		{name: "bad level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(tt.backend, tt.format, tt.level, &buf)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			l.Info(context.Background(), "hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("slog", "text", "warn", &buf)
	require.NoError(t, err)

	l.Info(context.Background(), "quiet")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "loud")
	assert.Contains(t, buf.String(), "msg=loud")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.With("a", 1).Error(context.Background(), "discarded")
}
