package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xplshn/bgen/pkg/config"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Output
	Output = &buf
	t.Cleanup(func() { Output = old })
	return &buf
}

func TestWarn(t *testing.T) {
	buf := capture(t)
	cfg := config.NewConfig()

	Warn(cfg, config.WarnPinConflict, "b7", "Pin %s is busy.", "PA_5")
	want := "block b7: warning: Pin PA_5 is busy. [-Wpin-conflict]\n"
	if got := buf.String(); got != want {
		t.Errorf("Warn wrote %q, want %q", got, want)
	}

	buf.Reset()
	cfg.ProcessFlagString("-Wno-pin-conflict")
	Warn(cfg, config.WarnPinConflict, "b7", "Pin %s is busy.", "PA_5")
	if buf.Len() != 0 {
		t.Errorf("disabled warning still printed %q", buf.String())
	}
}

func TestPrintTables(t *testing.T) {
	buf := capture(t)
	cfg := config.NewConfig()
	PrintWarnings(cfg)
	PrintFeatures(cfg)
	for _, name := range []string{"pin-conflict", "analog-range", "strict-pins", "main-loop"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("tables missing %q:\n%s", name, buf.String())
		}
	}
}
