package whats4dinner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewResource(t *testing.T) {
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "")
	t.Setenv("OTEL_SERVICE_NAME", "")

	res, err := newResource(context.Background(), OtelConfig{
		ServiceName:    "whats4dinner-test",
		ServiceVersion: "1.2.3",
		DeployEnv:      "test",
	})
	require.NoError(t, err)

	set := res.Set()
	for key, want := range map[attribute.Key]string{
		"service.name":           "whats4dinner-test",
		"service.version":        "1.2.3",
		"deployment.environment": "test",
	} {
		got, ok := set.Value(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got.AsString())
	}
}

func TestNewResource_EnvWins(t *testing.T) {
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment=staging")
	t.Setenv("OTEL_SERVICE_NAME", "")

	res, err := newResource(context.Background(), OtelConfig{ServiceName: "whats4dinner", DeployEnv: "development"})
	require.NoError(t, err)

	got, ok := res.Set().Value("deployment.environment")
	require.True(t, ok)
	assert.Equal(t, "staging", got.AsString())
}
