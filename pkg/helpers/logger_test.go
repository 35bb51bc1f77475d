package helpers

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Formatter(t *testing.T) {
	dev := NewLogger("app", "development")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := NewLogger("app", "production")
	assert.Equal(t, logrus.InfoLevel, prod.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
}

func TestLogHelpers(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogError(logger, "boom", errors.New("db down"), logrus.Fields{"user_id": "u1"})
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "db down", hook.LastEntry().Data["error"])
	assert.Equal(t, "u1", hook.LastEntry().Data["user_id"])

	LogWarn(logger, "careful", nil, nil)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	LogInfo(logger, "hello", nil)
	assert.Equal(t, "hello", hook.LastEntry().Message)

	// nil loggers are ignored
	LogError(nil, "x", nil, nil)
	LogInfo(nil, "x", nil)
	LogWarn(nil, "x", nil, nil)
}
