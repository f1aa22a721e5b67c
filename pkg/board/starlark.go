package board

import (
	"fmt"

	"go.starlark.net/starlark"
)

// LoadStarlark executes a board description file and registers every
// profile it declares. A file calls the predeclared board(...) builtin once
// per profile:
//
//	board(
//	    key = "my_f401",
//	    base = "nucleo_f103rb",
//	    name = "My F401",
//	    digital_pins = ["PA_0", ("LED", "PA_5")],
//	    serial = {"Serial_2": ("PA_2", "PA_3")},
//	    spi = {"SPI1": ("PA_7", "PA_6", "PA_5")},
//	)
//
// Serial entries map a port to its (tx, rx) pins and SPI entries map a bus
// to its (mosi, miso, sck) pins. src follows starlark.ExecFile: nil reads
// filename from disk.
func LoadStarlark(filename string, src any) ([]*Profile, error) {
	var loaded []*Profile

	builtin := starlark.NewBuiltin("board", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			key, base, name, description, compilerFlag     string
			digital, analog, pwm, speeds, leds, interrupts *starlark.List
			serial, spi                                    *starlark.Dict
		)
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
			"key", &key,
			"base?", &base,
			"name?", &name,
			"description?", &description,
			"compiler_flag?", &compilerFlag,
			"digital_pins?", &digital,
			"analog_pins?", &analog,
			"pwm_pins?", &pwm,
			"serial_speed?", &speeds,
			"builtin_led?", &leds,
			"interrupt?", &interrupts,
			"serial?", &serial,
			"spi?", &spi,
		); err != nil {
			return nil, err
		}

		p := &Profile{Key: key, Name: key}
		if base != "" {
			parent, ok := Lookup(base)
			if !ok {
				return nil, fmt.Errorf("%s: unknown base board %q", fn.Name(), base)
			}
			p = parent.Duplicate(key, parent.Name, "", "")
		}
		if name != "" {
			p.Name = name
		}
		if description != "" {
			p.Description = description
		}
		if compilerFlag != "" {
			p.CompilerFlag = compilerFlag
		}

		lists := []struct {
			src *starlark.List
			dst *[]Option
		}{
			{digital, &p.DigitalPins},
			{analog, &p.AnalogPins},
			{pwm, &p.PwmPins},
			{speeds, &p.SerialSpeed},
			{leds, &p.BuiltinLed},
			{interrupts, &p.Interrupt},
		}
		for _, l := range lists {
			if l.src == nil {
				continue
			}
			opts, err := toOptions(l.src)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", fn.Name(), key, err)
			}
			*l.dst = opts
		}

		if serial != nil {
			if err := applySerial(p, serial); err != nil {
				return nil, fmt.Errorf("%s %s: %w", fn.Name(), key, err)
			}
		}
		if spi != nil {
			if err := applySPI(p, spi); err != nil {
				return nil, fmt.Errorf("%s %s: %w", fn.Name(), key, err)
			}
		}

		loaded = append(loaded, p)
		return starlark.None, nil
	})

	thread := &starlark.Thread{Name: "board " + filename}
	predeclared := starlark.StringDict{"board": builtin}
	if _, err := starlark.ExecFile(thread, filename, src, predeclared); err != nil {
		return nil, err
	}
	for _, p := range loaded {
		Register(p)
	}
	return loaded, nil
}

func toOptions(l *starlark.List) ([]Option, error) {
	opts := make([]Option, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		switch v := l.Index(i).(type) {
		case starlark.String:
			opts = append(opts, Option{string(v), string(v)})
		case starlark.Tuple:
			strs, err := toStrings(v, 2)
			if err != nil {
				return nil, err
			}
			opts = append(opts, Option{strs[0], strs[1]})
		default:
			return nil, fmt.Errorf("option %d: got %s, want string or (label, value)", i, v.Type())
		}
	}
	return opts, nil
}

func toStrings(t starlark.Tuple, n int) ([]string, error) {
	if len(t) != n {
		return nil, fmt.Errorf("got %d-tuple, want %d elements", len(t), n)
	}
	out := make([]string, n)
	for i, v := range t {
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("tuple element %d: got %s, want string", i, v.Type())
		}
		out[i] = s
	}
	return out, nil
}

func applySerial(p *Profile, d *starlark.Dict) error {
	p.Serial, p.SerialPinsRX, p.SerialPinsTX = nil, nil, nil
	p.SerialMapper = map[string]string{}
	p.SerialPorts = map[string][2]string{}
	for _, item := range d.Items() {
		port, ok := starlark.AsString(item[0])
		if !ok {
			return fmt.Errorf("serial: port name must be a string, got %s", item[0].Type())
		}
		t, ok := item[1].(starlark.Tuple)
		if !ok {
			return fmt.Errorf("serial %s: want (tx, rx), got %s", port, item[1].Type())
		}
		pins, err := toStrings(t, 2)
		if err != nil {
			return fmt.Errorf("serial %s: %w", port, err)
		}
		p.Serial = append(p.Serial, Option{port, port})
		p.SerialPinsTX = append(p.SerialPinsTX, Option{pins[0], pins[0]})
		p.SerialPinsRX = append(p.SerialPinsRX, Option{pins[1], pins[1]})
		p.SerialMapper[pins[0]], p.SerialMapper[pins[1]] = port, port
		p.SerialPorts[port] = [2]string{pins[0], pins[1]}
	}
	return nil
}

func applySPI(p *Profile, d *starlark.Dict) error {
	p.SPI = nil
	p.SPIPins = map[string]SPIBus{}
	for _, item := range d.Items() {
		bus, ok := starlark.AsString(item[0])
		if !ok {
			return fmt.Errorf("spi: bus name must be a string, got %s", item[0].Type())
		}
		t, ok := item[1].(starlark.Tuple)
		if !ok {
			return fmt.Errorf("spi %s: want (mosi, miso, sck), got %s", bus, item[1].Type())
		}
		pins, err := toStrings(t, 3)
		if err != nil {
			return fmt.Errorf("spi %s: %w", bus, err)
		}
		p.SPI = append(p.SPI, Option{bus, bus})
		p.SPIPins[bus] = SPIBus{MOSI: pins[0], MISO: pins[1], SCK: pins[2]}
	}
	return nil
}
