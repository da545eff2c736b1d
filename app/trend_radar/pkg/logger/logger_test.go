package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&CustomFormatter{})

	l.WithField("category", "finance").Warn("抓取失败")

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "抓取失败")
	assert.Contains(t, out, "category=finance")
}

func TestInitLoggerWritesFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "logs", "radar.log")
	require.NoError(t, InitLogger("debug", path))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.FileExists(t, path)
}

func TestInitLoggerBadLevelDefaultsToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, InitLogger("loud", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestKratosBridge(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var buf bytes.Buffer
	Log = logrus.New()
	Log.SetOutput(&buf)
	Log.SetFormatter(&CustomFormatter{})

	h := log.NewHelper(Kratos())
	h.Errorw(log.DefaultMessageKey, "server stopped", "addr", ":8000")

	out := buf.String()
	assert.Contains(t, out, "[ERRO]")
	assert.Contains(t, out, "server stopped")
	assert.Contains(t, out, "addr=:8000")
}
