package ssh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pfassina/labtracker/internal/app"
	"github.com/pfassina/labtracker/internal/config"
	"github.com/pfassina/labtracker/internal/logging"
)

func TestNewGeneratesHostKey(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Listen = "127.0.0.1:0"

	srv, err := New(cfg, app.Deps{Logger: logging.Discard()})
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, "ssh_host_key")); err != nil {
		t.Errorf("host key not written: %v", err)
	}
}
