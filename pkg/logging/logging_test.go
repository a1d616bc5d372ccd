package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestBuild_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	build(&buf, "", "info").Info("hello", "path", "docs/index.md")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "docs/index.md", line["path"])
}

func TestBuild_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	build(&buf, "text", "info").Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestBuild_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	build(&buf, "json", "warn").Info("dropped")

	assert.Empty(t, buf.String())
}

func TestNewWithWriter_TagsApp(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer

	NewWithWriter(&buf, "docstatus-cli").Warn("slow fetch", "path", "tools")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "docstatus-cli", line["app"])
	assert.Equal(t, "WARN", line["level"])
}
