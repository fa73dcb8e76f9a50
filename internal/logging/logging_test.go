package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	require.NoError(t, err)
	logger.WithField("op", "task.create").Debug("task.create.received")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "task.create.received", line["msg"])
	assert.Equal(t, "task.create", line["op"])
	assert.Equal(t, "debug", line["level"])
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)
	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", &buf)
	require.NoError(t, err)

	entry := logger.WithField("request_id", "abc")
	ctx := WithEntry(context.Background(), entry)
	assert.Same(t, entry, FromContext(ctx, nil))

	fallback := FromContext(context.Background(), logger)
	assert.Same(t, logger, fallback.Logger)
	assert.Same(t, log.StandardLogger(), FromContext(context.Background(), nil).Logger)
}
