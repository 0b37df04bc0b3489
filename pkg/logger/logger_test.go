package logger

import (
	"os"
	"path/filepath"
	"testing"

	"cybersafe_backend/internal/config"
)

func TestInitLoggerWritesToConfiguredPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	cfg := &config.Config{}
	cfg.Log.Path = path
	InitLogger(cfg)

	Log.Info("log path check")
	Log.Sync()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("log file not created at configured path: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("log file is empty after an info write")
	}
}
