package logger

import (
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
)

func TestInit_EnvOverridesLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	t.Setenv("LOG_LEVEL", "debug")
	Init("error")

	lg, ok := Log.(*slog.Logger)
	assert.True(t, ok)
	assert.NotNil(t, lg)
}

func TestWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "blog-api")

	fields := withServiceName(nil)
	assert.Equal(t, "blog-api", fields["service_name"])

	fields = withServiceName(Fields{"service_name": "explicit"})
	assert.Equal(t, "explicit", fields["service_name"])
}
