package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := InitWriter("debug", "json", &buf)
	require.NoError(t, err)

	l.Info("journal window", zap.Int("entries", 3))
	Sync()

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "journal window", line["message"])
	assert.Equal(t, "info", line["level"])
	assert.EqualValues(t, 3, line["entries"])
	assert.Same(t, l, L())
}

func TestInitRejectsBadInput(t *testing.T) {
	_, err := Init("loud", "json")
	assert.Error(t, err)

	_, err = Init("info", "xml")
	assert.Error(t, err)
}

func TestFromCarriesContextFields(t *testing.T) {
	ctx := WithFields(context.Background(), zap.String("request_id", "req-9"))
	ctx = WithFields(ctx, zap.String("project", "foo"))
	assert.Len(t, Fields(ctx), 2)
	assert.Empty(t, Fields(context.Background()))

	var buf bytes.Buffer
	_, err := InitWriter("info", "json", &buf)
	require.NoError(t, err)

	From(ctx).Info("release detail")
	From(context.Background()).Info("bare")
	Sync()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "req-9", first["request_id"])
	assert.Equal(t, "foo", first["project"])
	assert.NotContains(t, second, "request_id")
}
