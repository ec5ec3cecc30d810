package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/intuition/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
	), &buf
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	log, buf := newBufferLogger(logger.WARN)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	log.WithFields(map[string]any{"zeta": 1, "alpha": "a"}).WithField("mid", true).Info("hello")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "hello alpha=a mid=true zeta=1\n"), line)
}

func TestLogger_PrefixAndCaller(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	log.WithPrefix("session").Error("boom")

	assert.Contains(t, buf.String(), "[session]")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestLogger_DerivedLoggersDoNotShareFields(t *testing.T) {
	log, buf := newBufferLogger(logger.DEBUG)

	child := log.WithField("request_id", "abc")
	log.Info("parent")

	assert.NotContains(t, buf.String(), "request_id")
	child.Info("child")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" ERROR "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))

	_, ok := logger.LookupLevel("nonsense")
	assert.False(t, ok)
}

func TestContext(t *testing.T) {
	log, _ := newBufferLogger(logger.DEBUG)
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
