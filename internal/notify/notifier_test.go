package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogNotifierRoutesLevels(t *testing.T) {
	var buf bytes.Buffer
	n := NewSlogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	n.Notify(LevelInfo, "Profile updated")
	n.Notify(LevelError, "Incorrect password")

	out := buf.String()
	assert.Contains(t, out, "Profile updated")
	assert.Contains(t, out, "level=ERROR")
}
