package config

import (
	"fmt"
	"strings"

	"github.com/xplshn/bgen/pkg/board"
	"github.com/xplshn/bgen/pkg/cli"
)

type Feature int

const (
	FeatComments Feature = iota
	FeatStrictPins
	FeatMainLoop
	FeatPreamble
	FeatCount
)

type Warning int

const (
	WarnPinConflict Warning = iota
	WarnAnalogRange
	WarnSerialSetup
	WarnSPISetup
	WarnType
	WarnExtra
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features    map[Feature]Info
	Warnings    map[Warning]Info
	FeatureMap  map[string]Feature
	WarningMap  map[string]Warning
	BoardName   string
	Board       *board.Profile
	IndentWidth int
}

func NewConfig() *Config {
	cfg := &Config{
		Features:    make(map[Feature]Info),
		Warnings:    make(map[Warning]Info),
		FeatureMap:  make(map[string]Feature),
		WarningMap:  make(map[string]Warning),
		IndentWidth: 2,
	}

	features := map[Feature]Info{
		FeatComments:   {"comments", true, "Emit block comments as '//' line comments."},
		FeatStrictPins: {"strict-pins", false, "Treat pin usage conflicts as fatal errors."},
		FeatMainLoop:   {"main-loop", true, "Wrap the loop branch of the main-functions block in 'while (true)'."},
		FeatPreamble:   {"preamble", true, "Emit the HIGH/LOW defines and the mbed.h include."},
	}

	warnings := map[Warning]Info{
		WarnPinConflict: {"pin-conflict", true, "Warn when a pin is claimed for two different usages."},
		WarnAnalogRange: {"analog-range", true, "Warn when a literal analogue value is outside 0..255."},
		WarnSerialSetup: {"serial-setup", true, "Warn when a serial block has no matching setup block."},
		WarnSPISetup:    {"spi-setup", true, "Warn when an SPI block has no matching setup block."},
		WarnType:        {"type", true, "Warn about conflicting or unresolved variable types."},
		WarnExtra:       {"extra", true, "Enable extra miscellaneous warnings."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}

	cfg.Board = board.Default()
	cfg.BoardName = cfg.Board.Key
	return cfg
}

// SetBoard selects the board profile used by hardware emitters.
func (c *Config) SetBoard(name string) error {
	p, ok := board.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown board '%s'. Supported: %s", name, strings.Join(board.Names(), ", "))
	}
	c.Board, c.BoardName = p, p.Key
	return nil
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

func (c *Config) applyFlag(flag string) {
	trimmed := strings.TrimPrefix(flag, "-")
	isNo := strings.HasPrefix(trimmed, "Wno-") || strings.HasPrefix(trimmed, "Fno-")
	enable := !isNo

	var name string
	var isWarning bool

	switch {
	case strings.HasPrefix(trimmed, "W"):
		name = strings.TrimPrefix(trimmed, "W")
		if isNo {
			name = strings.TrimPrefix(name, "no-")
		}
		isWarning = true
	case strings.HasPrefix(trimmed, "F"):
		name = strings.TrimPrefix(trimmed, "F")
		if isNo {
			name = strings.TrimPrefix(name, "no-")
		}
	default:
		name = trimmed
		isWarning = true
	}

	if name == "all" && isWarning {
		for i := Warning(0); i < WarnCount; i++ {
			c.SetWarning(i, enable)
		}
		return
	}

	if isWarning {
		if w, ok := c.WarningMap[name]; ok {
			c.SetWarning(w, enable)
		}
	} else {
		if f, ok := c.FeatureMap[name]; ok {
			c.SetFeature(f, enable)
		}
	}
}

// ProcessFlagString applies a whitespace separated list such as
// "-Wno-type -Fstrict-pins".
func (c *Config) ProcessFlagString(flagStr string) {
	for _, flag := range strings.Fields(flagStr) {
		c.applyFlag(flag)
	}
}

// SetupFlagGroups registers -W<name>/-Wno-<name> and -F<name>/-Fno-<name>
// flags on fs. The returned entries are indexed by Warning and Feature.
func (c *Config) SetupFlagGroups(fs *cli.FlagSet) ([]cli.FlagGroupEntry, []cli.FlagGroupEntry) {
	warningFlags := make([]cli.FlagGroupEntry, WarnCount)
	for i := Warning(0); i < WarnCount; i++ {
		info := c.Warnings[i]
		enabled, disabled := info.Enabled, false
		warningFlags[i] = cli.FlagGroupEntry{
			Name: info.Name, Prefix: "W", Usage: info.Description,
			Enabled: &enabled, Disabled: &disabled,
		}
	}

	featureFlags := make([]cli.FlagGroupEntry, FeatCount)
	for i := Feature(0); i < FeatCount; i++ {
		info := c.Features[i]
		enabled, disabled := info.Enabled, false
		featureFlags[i] = cli.FlagGroupEntry{
			Name: info.Name, Prefix: "F", Usage: info.Description,
			Enabled: &enabled, Disabled: &disabled,
		}
	}

	fs.AddFlagGroup("Warning Flags", "Enable or disable specific warnings", "warning", "Available Warnings:", warningFlags)
	fs.AddFlagGroup("Feature Flags", "Enable or disable code generation features", "feature", "Available Features:", featureFlags)
	return warningFlags, featureFlags
}

// ApplyFlagGroups copies the parsed group entries back onto the tables.
func (c *Config) ApplyFlagGroups(warningFlags, featureFlags []cli.FlagGroupEntry) {
	for i, entry := range warningFlags {
		if entry.Disabled != nil && *entry.Disabled {
			c.SetWarning(Warning(i), false)
		} else if entry.Enabled != nil {
			c.SetWarning(Warning(i), *entry.Enabled)
		}
	}
	for i, entry := range featureFlags {
		if entry.Disabled != nil && *entry.Disabled {
			c.SetFeature(Feature(i), false)
		} else if entry.Enabled != nil {
			c.SetFeature(Feature(i), *entry.Enabled)
		}
	}
}
