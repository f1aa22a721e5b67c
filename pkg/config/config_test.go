package config

import (
	"testing"

	"github.com/xplshn/bgen/pkg/cli"
)

func TestDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.BoardName != "nucleo_f103rb" || cfg.Board == nil {
		t.Errorf("default board = %q", cfg.BoardName)
	}
	if cfg.IsFeatureEnabled(FeatStrictPins) {
		t.Error("strict-pins should be off by default")
	}
	for _, ft := range []Feature{FeatComments, FeatMainLoop, FeatPreamble} {
		if !cfg.IsFeatureEnabled(ft) {
			t.Errorf("feature %s should be on by default", cfg.Features[ft].Name)
		}
	}
	for i := Warning(0); i < WarnCount; i++ {
		if !cfg.IsWarningEnabled(i) {
			t.Errorf("warning %s should be on by default", cfg.Warnings[i].Name)
		}
	}
}

func TestSetBoard(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.SetBoard("uno"); err != nil {
		t.Fatal(err)
	}
	if cfg.BoardName != "uno" || cfg.Board.Key != "uno" {
		t.Errorf("board = %q / %q, want uno", cfg.BoardName, cfg.Board.Key)
	}
	if err := cfg.SetBoard("esp32"); err == nil {
		t.Error("expected an error for an unknown board")
	}
	if cfg.BoardName != "uno" {
		t.Error("a failed SetBoard must keep the previous board")
	}
}

func TestProcessFlagString(t *testing.T) {
	cfg := NewConfig()
	cfg.ProcessFlagString("-Wno-all -Wtype -Fstrict-pins -Fno-comments -Wbogus -Fbogus")

	if !cfg.IsWarningEnabled(WarnType) {
		t.Error("-Wtype should re-enable the type warning")
	}
	if cfg.IsWarningEnabled(WarnPinConflict) || cfg.IsWarningEnabled(WarnExtra) {
		t.Error("-Wno-all should disable the other warnings")
	}
	if !cfg.IsFeatureEnabled(FeatStrictPins) {
		t.Error("-Fstrict-pins should enable strict-pins")
	}
	if cfg.IsFeatureEnabled(FeatComments) {
		t.Error("-Fno-comments should disable comments")
	}
}

func TestFlagGroups(t *testing.T) {
	cfg := NewConfig()
	fs := cli.NewFlagSet("test")
	warningFlags, featureFlags := cfg.SetupFlagGroups(fs)

	if err := fs.Parse([]string{"-Wno-serial-setup", "-Fstrict-pins", "-Fno-preamble", "in.json"}); err != nil {
		t.Fatal(err)
	}
	cfg.ApplyFlagGroups(warningFlags, featureFlags)

	if cfg.IsWarningEnabled(WarnSerialSetup) {
		t.Error("-Wno-serial-setup was not applied")
	}
	if !cfg.IsWarningEnabled(WarnSPISetup) {
		t.Error("untouched warnings should keep their defaults")
	}
	if !cfg.IsFeatureEnabled(FeatStrictPins) || cfg.IsFeatureEnabled(FeatPreamble) {
		t.Error("feature flags were not applied")
	}
	if !cfg.IsFeatureEnabled(FeatMainLoop) {
		t.Error("untouched features should keep their defaults")
	}
	if args := fs.Args(); len(args) != 1 || args[0] != "in.json" {
		t.Errorf("Args() = %v", args)
	}
}
