// Package board holds the board profile lookup tables consulted by hardware
// emitters: pin lists, serial ports, SPI buses and their default pin maps.
package board

import (
	"fmt"
	"sort"
	"sync"
)

// Option is one (label, value) pair of a dropdown list.
type Option struct {
	Label string
	Value string
}

// SPIBus maps the bus signals to board pins.
type SPIBus struct{ MOSI, MISO, SCK string }

// Profile describes one target board.
type Profile struct {
	Key          string
	Name         string
	Description  string
	CompilerFlag string

	DigitalPins  []Option
	AnalogPins   []Option
	PwmPins      []Option
	Serial       []Option
	SerialPinsRX []Option
	SerialPinsTX []Option
	SerialSpeed  []Option
	// SerialMapper maps an RX or TX pin to the serial port it belongs to.
	SerialMapper map[string]string
	// SerialPorts maps a serial port to its (tx, rx) pins.
	SerialPorts map[string][2]string

	SPI             []Option
	SPIPins         map[string]SPIBus
	SPI1Choice      []Option
	SPI1Alternative SPIBus

	I2C        []Option
	I2CPins    map[string][]Option
	I2CSpeed   []Option
	BuiltinLed []Option
	Interrupt  []Option
}

// Options returns the ordered (label, value) list stored under key. Keys
// follow the editor's naming ("digitalPins", "serial", "spi", ...).
func (p *Profile) Options(key string) ([]Option, error) {
	switch key {
	case "digitalPins":
		return p.DigitalPins, nil
	case "analogPins":
		return p.AnalogPins, nil
	case "pwmPins":
		return p.PwmPins, nil
	case "serial", "serialPins":
		return p.Serial, nil
	case "serialPinsRX":
		return p.SerialPinsRX, nil
	case "serialPinsTX":
		return p.SerialPinsTX, nil
	case "serialSpeed":
		return p.SerialSpeed, nil
	case "spi":
		return p.SPI, nil
	case "spi1_choice":
		return p.SPI1Choice, nil
	case "i2c":
		return p.I2C, nil
	case "i2cSpeed":
		return p.I2CSpeed, nil
	case "builtinLed":
		return p.BuiltinLed, nil
	case "interrupt":
		return p.Interrupt, nil
	}
	return nil, fmt.Errorf("board %s: unknown option list %q", p.Key, key)
}

// Has reports whether value appears in the option list stored under key.
func (p *Profile) Has(key, value string) bool {
	opts, err := p.Options(key)
	if err != nil {
		return false
	}
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// SerialPort resolves the serial port owning pin, or "" if none.
func (p *Profile) SerialPort(pin string) string { return p.SerialMapper[pin] }

// SPIBusPins returns the pins of an SPI bus. choice selects an alternative
// pin mapping for SPI1 when it matches one of the SPI1Choice values.
func (p *Profile) SPIBusPins(bus, choice string) (SPIBus, bool) {
	if bus == "SPI1" && choice != "" && len(p.SPI1Choice) > 1 && choice == p.SPI1Choice[1].Value {
		return p.SPI1Alternative, true
	}
	pins, ok := p.SPIPins[bus]
	return pins, ok
}

// Duplicate copies every table of p under a new key and name.
func (p *Profile) Duplicate(key, name, description, compilerFlag string) *Profile {
	cp := *p
	cp.Key, cp.Name = key, name
	if description != "" {
		cp.Description = description
	}
	if compilerFlag != "" {
		cp.CompilerFlag = compilerFlag
	}
	return &cp
}

var (
	mu       sync.RWMutex
	profiles = map[string]*Profile{}
)

// Register adds or replaces a profile.
func Register(p *Profile) {
	mu.Lock()
	defer mu.Unlock()
	profiles[p.Key] = p
}

func Lookup(key string) (*Profile, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := profiles[key]
	return p, ok
}

// Names lists registered profile keys in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(profiles))
	for k := range profiles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultKey is the profile selected when none is requested.
const DefaultKey = "nucleo_f103rb"

func Default() *Profile {
	p, _ := Lookup(DefaultKey)
	return p
}

func generateDigitalIo(start, end int) []Option {
	var io []Option
	for i := start; i <= end; i++ {
		s := fmt.Sprint(i)
		io = append(io, Option{s, s})
	}
	return io
}

func generateAnalogIo(start, end int) []Option {
	var io []Option
	for i := start; i <= end; i++ {
		s := fmt.Sprintf("A%d", i)
		io = append(io, Option{s, s})
	}
	return io
}

func same(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{v, v}
	}
	return opts
}
