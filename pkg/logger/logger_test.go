package logger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		wantErr  bool
	}{
		{name: "json info", level: "info", encoding: "json"},
		{name: "console debug", level: "debug", encoding: "console"},
		{name: "invalid level", level: "loud", encoding: "json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.encoding)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l.Logger)
		})
	}
}

func TestFromContext(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	base := Wrap(zap.New(core))
	scoped := base.With(StringField("request_id", "abc"))

	ctx := NewContext(context.Background(), scoped)
	base.InfoContext(ctx, "scoped message")
	base.InfoContext(context.Background(), "plain message")

	require.Equal(t, 2, recorded.Len())
	assert.Equal(t, 1, recorded.FilterField(zap.String("request_id", "abc")).Len())
	assert.Same(t, base, base.FromContext(context.Background()))
}

func TestContextHelpers_ReportCallerSite(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	base := Wrap(zap.New(core, zap.AddCaller()))
	ctx := NewContext(context.Background(), base.Named("scoped"))

	base.DebugContext(ctx, "debug")
	base.InfoContext(ctx, "info")
	base.WarnContext(context.Background(), "warn")
	base.ErrorContext(context.Background(), "error")

	require.Equal(t, 4, recorded.Len())
	for _, entry := range recorded.All() {
		assert.True(t, entry.Caller.Defined, entry.Message)
		assert.True(t, strings.HasSuffix(entry.Caller.File, "logger_test.go"), "%s logged from %s", entry.Message, entry.Caller.File)
	}
}
