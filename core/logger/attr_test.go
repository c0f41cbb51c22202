package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/logger"
)

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	t.Parallel()
	attr := logger.RequestID("req-1")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestHTTPAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attr slog.Attr
		key  string
		want any
	}{
		{logger.Path("/discover"), "path", "/discover"},
		{logger.Referer("https://goteo.org/"), "referer", "https://goteo.org/"},
		{logger.Route("project"), "route", "project"},
		{logger.UserID("alice"), "user", "alice"},
		{logger.ClientIP("203.0.113.7"), "client_ip", "203.0.113.7"},
		{logger.Component("normalizer"), "component", "normalizer"},
		{logger.Action("indexAction"), "action", "indexAction"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	attr := logger.Query(map[string][]string{"currency": {"USD"}})
	require.Equal(t, "query", attr.Key)
	assert.Equal(t, map[string][]string{"currency": {"USD"}}, attr.Value.Any())

	empty := logger.Query(nil)
	require.Equal(t, "query", empty.Key)
	assert.Empty(t, empty.Value.Any())
}

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack()
	require.Equal(t, "stack", attr.Key)
	assert.Contains(t, attr.Value.String(), "TestStack")
}
