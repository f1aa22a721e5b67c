package board

var serialSpeeds = same("9600", "300", "600", "1200", "2400", "4800", "14400",
	"19200", "28800", "31250", "38400", "57600", "115200")

var nucleoF103RB = &Profile{
	Key:         "nucleo_f103rb",
	Name:        "NUCLEO F103RB",
	Description: "mbed NUCLEO standard compatible board",
	DigitalPins: same(
		"PC_9", "PB_8", "PB_9", "PA_5", "PA_6", "PA_7", "PB_6", "PC_7", "PA_9", "PA_8",
		"PB_10", "PB_4", "PB_5", "PB_3", "PA_10", "PA_2", "PA_3", "PC_8", "PC_6", "PC_5",
		"PA_12", "PA_11", "PB_12", "PB_11", "PB_2", "PB_1", "PB_15", "PB_14", "PB_13", "PC_4",
		"PC_10", "PC_12", "PA_13", "PA_14", "PA_15", "PB_7", "PC_13", "PC_14", "PC_15", "PF_0",
		"PF_1", "PC_2", "PC_3", "PC_11", "PD_2", "PA_0", "PA_1", "PA_4", "PB_0", "PC_1", "PC_0"),
	AnalogPins: generateAnalogIo(0, 5),
	PwmPins: same(
		"PC_9", "PA_6", "PA_7", "PC_7", "PA_9", "PA_8", "PB_10", "PB_4", "PB_5", "PB_3",
		"PA_10", "PA_2", "PA_3", "PC_8", "PC_6", "PA_11", "PB_11", "PB_1", "PB_15", "PB_14",
		"PB_13", "PC_4", "PA_15", "PA_1", "PB_0"),
	Serial:       same("Serial_1", "Serial_2", "Serial_3"),
	SerialPinsRX: same("PA_10", "PA_3", "PB_11", "PB_7", "PC_11"),
	SerialPinsTX: same("PB_6", "PC_10", "PA_9", "PB_10", "PA_2"),
	SerialMapper: map[string]string{
		"PC_10": "Serial_3", "PC_11": "Serial_3", "PB_10": "Serial_3", "PB_11": "Serial_3",
		"PB_6": "Serial_1", "PB_7": "Serial_1", "PA_9": "Serial_1", "PA_10": "Serial_1",
		"PA_2": "Serial_2", "PA_3": "Serial_2",
	},
	SerialPorts: map[string][2]string{
		"Serial_1": {"PA_9", "PA_10"},
		"Serial_2": {"PA_2", "PA_3"},
		"Serial_3": {"PB_10", "PB_11"},
	},
	SerialSpeed: serialSpeeds,
	SPI:         same("SPI2", "SPI1"),
	SPIPins: map[string]SPIBus{
		"SPI1": {MOSI: "PA_7", MISO: "PA_6", SCK: "PA_5"},
		"SPI2": {MOSI: "PB_15", MISO: "PB_14", SCK: "PB_13"},
	},
	SPI1Choice:      same("PA_5,PA_6,PA_7", "PB_3,PB_4,PB_5"),
	SPI1Alternative: SPIBus{MOSI: "PB_5", MISO: "PB_4", SCK: "PB_3"},
	I2C:             []Option{{"I2C", "Wire"}},
	I2CPins:         map[string][]Option{"Wire": {{"SDA", "PB_9"}, {"SCL", "PB_8"}}},
	I2CSpeed:        []Option{{"100kHz", "100000"}, {"400kHz", "400000"}},
	BuiltinLed:      []Option{{"LED_1", "PA_5"}},
	Interrupt:       []Option{{"interrupt0", "PC_13"}},
}

var lpc1768 = &Profile{
	Key:          "lpc1768",
	Name:         "mbed LPC1768",
	Description:  "Original mbed NXP LPC1768 module",
	DigitalPins:  same("p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12", "p13", "p14", "p15", "p16", "p17", "p18", "p19", "p20", "p21", "p22", "p23", "p24", "p25", "p26", "p27", "p28", "p29", "p30"),
	AnalogPins:   same("p15", "p16", "p17", "p18", "p19", "p20"),
	PwmPins:      same("p21", "p22", "p23", "p24", "p25", "p26"),
	Serial:       same("Serial_1", "Serial_2", "Serial_3"),
	SerialPinsRX: same("p10", "p14", "p27"),
	SerialPinsTX: same("p9", "p13", "p28"),
	SerialMapper: map[string]string{
		"p9": "Serial_1", "p10": "Serial_1",
		"p13": "Serial_2", "p14": "Serial_2",
		"p28": "Serial_3", "p27": "Serial_3",
	},
	SerialPorts: map[string][2]string{
		"Serial_1": {"p9", "p10"},
		"Serial_2": {"p13", "p14"},
		"Serial_3": {"p28", "p27"},
	},
	SerialSpeed: serialSpeeds,
	SPI:         same("SPI1", "SPI2"),
	SPIPins: map[string]SPIBus{
		"SPI1": {MOSI: "p5", MISO: "p6", SCK: "p7"},
		"SPI2": {MOSI: "p11", MISO: "p12", SCK: "p13"},
	},
	I2C:        []Option{{"I2C", "Wire"}},
	I2CPins:    map[string][]Option{"Wire": {{"SDA", "p28"}, {"SCL", "p27"}}},
	I2CSpeed:   []Option{{"100kHz", "100000"}, {"400kHz", "400000"}},
	BuiltinLed: []Option{{"LED_1", "LED1"}, {"LED_2", "LED2"}, {"LED_3", "LED3"}, {"LED_4", "LED4"}},
	Interrupt:  []Option{{"interrupt0", "p5"}, {"interrupt1", "p6"}},
}

var uno = &Profile{
	Key:          "uno",
	Name:         "mbed Uno",
	Description:  "mbed Uno standard compatible board",
	CompilerFlag: "mbed:avr:uno",
	AnalogPins:   generateAnalogIo(0, 5),
	DigitalPins:  append(generateDigitalIo(0, 13), generateAnalogIo(0, 5)...),
	PwmPins:      same("3", "5", "6", "9", "10", "11"),
	Serial:       same("Serial"),
	SerialPinsRX: same("0"),
	SerialPinsTX: same("1"),
	SerialMapper: map[string]string{"0": "Serial", "1": "Serial"},
	SerialPorts:  map[string][2]string{"Serial": {"1", "0"}},
	SerialSpeed:  serialSpeeds,
	SPI:          same("SPI"),
	SPIPins:      map[string]SPIBus{"SPI": {MOSI: "11", MISO: "12", SCK: "13"}},
	I2C:          []Option{{"I2C", "Wire"}},
	I2CPins:      map[string][]Option{"Wire": {{"SDA", "A4"}, {"SCL", "A5"}}},
	I2CSpeed:     []Option{{"100kHz", "100000L"}, {"400kHz", "400000L"}},
	BuiltinLed:   []Option{{"BUILTIN_1", "13"}},
	Interrupt:    []Option{{"interrupt0", "2"}, {"interrupt1", "3"}},
}

func init() {
	Register(nucleoF103RB)
	Register(lpc1768)
	Register(uno)

	nano := uno.Duplicate("nano", "mbed Nano", "mbed Nano with FTDI compatible board", "mbed:avr:nano")
	nano.AnalogPins = generateAnalogIo(0, 7)
	nano.DigitalPins = append(generateDigitalIo(0, 13), generateAnalogIo(0, 7)...)
	Register(nano)
}
