package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	require.NoError(t, Setup("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	err := Setup("barulhento")
	assert.Error(t, err)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithCorrelationIDValue(t *testing.T) {
	ctx, id := WithCorrelationIDValue(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "abc-123", GetCorrelationID(ctx))

	_, generated := WithCorrelationIDValue(context.Background(), "")
	assert.NotEmpty(t, generated)
}

func TestKeepInDevelopment(t *testing.T) {
	assert.True(t, keepInDevelopment("panel"))
	assert.True(t, keepInDevelopment("user_id"))
	assert.True(t, keepInDevelopment(correlationIDField))
	assert.False(t, keepInDevelopment("remote_addr"))
}
