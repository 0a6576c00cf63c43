package environment_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want environment.Environment
	}{
		{"", environment.Development},
		{"dev", environment.Development},
		{"Development", environment.Development},
		{"stage", environment.Staging},
		{" staging ", environment.Staging},
		{"prod", environment.Production},
		{"PRODUCTION", environment.Production},
	}
	for _, tt := range tests {
		got, err := environment.Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := environment.Parse("qa")
	assert.ErrorIs(t, err, environment.ErrUnknownEnvironment)
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, environment.FromContext(context.Background()))

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.Equal(t, environment.Production, environment.FromContext(ctx))

	ctx = environment.WithContext(ctx, environment.Staging)
	assert.Equal(t, environment.Staging, environment.FromContext(ctx))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := environment.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(environment.WithContext(context.Background(), environment.Staging))
	require.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "staging", attr.Value.String())

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	log.InfoContext(context.Background(), "msg", attr)
	assert.Contains(t, buf.String(), "env=staging")
}
