package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pathrouter/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")

	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

// ============================================================================
// Routing Tests
// ============================================================================

func TestRoutingAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.String("method", "GET"), logger.Method("GET"))
	assert.Equal(t, slog.String("path", "/users/1"), logger.Path("/users/1"))
	assert.Equal(t, slog.String("pattern", "/users/{id}"), logger.Pattern("/users/{id}"))
	assert.Equal(t, slog.Int("status_code", 405), logger.StatusCode(405))
	assert.Equal(t, slog.Duration("latency", time.Millisecond), logger.Latency(time.Millisecond))

	methods := logger.Methods([]string{"GET", "POST"})
	assert.Equal(t, "methods", methods.Key)
	assert.Equal(t, []string{"GET", "POST"}, methods.Value.Any())

	assert.True(t, logger.Pattern("").Equal(slog.Attr{}))
	assert.True(t, logger.Methods(nil).Equal(slog.Attr{}))
	assert.True(t, logger.File("").Equal(slog.Attr{}))
}

func TestMetadataAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.String("component", "router"), logger.Component("router"))
	assert.Equal(t, slog.String("type", "param"), logger.Type("param"))
	assert.Equal(t, slog.String("result", "found"), logger.Result("found"))
	assert.Equal(t, slog.Int("routes", 3), logger.Count("routes", 3))
	assert.Equal(t, slog.String("file", "routes.yaml"), logger.File("routes.yaml"))
}
