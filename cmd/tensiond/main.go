// Command tensiond runs the endline tension logger on a host: the
// operator console on a serial port or stdio, the amplifier head on
// its own serial link (or mocked), and the card on a directory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/MMartini1/endline-tension-meter/pkg/battery"
	"github.com/MMartini1/endline-tension-meter/pkg/clock"
	"github.com/MMartini1/endline-tension-meter/pkg/console"
	"github.com/MMartini1/endline-tension-meter/pkg/indicator"
	"github.com/MMartini1/endline-tension-meter/pkg/loadcell"
	"github.com/MMartini1/endline-tension-meter/pkg/session"
	"github.com/MMartini1/endline-tension-meter/pkg/storage"
)

func main() {
	configPath := flag.String("config", "tensiond.yaml", "path to the runtime wiring file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	hw, err := buildHardware(cfg, logger)
	if err != nil {
		logger.Error("failed to wire hardware", "error", err)
		os.Exit(1)
	}

	if cfg.WaitToStart {
		hw.Console.Println("Type any character to start")
		hw.Console.WaitForInput()
		hw.Console.Drain()
	}

	s := session.New(hw)
	if err := s.Run(); err != nil {
		// A fatal subsystem failure halts the logger permanently;
		// recovery requires a power cycle (process restart). The
		// error report and indicator state are already out.
		logger.Error("logger halted", "error", err)
		select {}
	}
}

func buildHardware(cfg *Config, logger *slog.Logger) (session.Hardware, error) {
	var hw session.Hardware

	if cfg.Console.Port != "" {
		t, err := console.NewSerialTransport(cfg.Console.Port, cfg.Console.Baud)
		if err != nil {
			return hw, err
		}
		hw.Console = console.New(t)
		logger.Info("console on serial port", "port", cfg.Console.Port, "baud", cfg.Console.Baud)
	} else {
		hw.Console = console.New(console.NewStdioTransport())
		logger.Info("console on stdio")
	}

	if cfg.Amplifier.Mock {
		hw.Amp = loadcell.NewMock(cfg.Amplifier.MockReading)
		logger.Info("amplifier mocked", "reading", cfg.Amplifier.MockReading)
	} else {
		hw.Amp = loadcell.NewSerial(cfg.Amplifier.Port, cfg.Amplifier.Baud)
		logger.Info("amplifier head", "port", cfg.Amplifier.Port, "baud", cfg.Amplifier.Baud)
	}

	if cfg.Indicator.Mock {
		hw.Panel = indicator.NewPanel(&indicator.MockBackend{}, hw.Console)
		hw.Lamp = &indicator.MockLamp{}
	} else {
		be, err := indicator.NewPeriphBackend(cfg.Indicator.RedPin, cfg.Indicator.GreenPin, cfg.Indicator.BluePin)
		if err != nil {
			return hw, err
		}
		lamp, err := indicator.NewPeriphLamp(cfg.Indicator.ErrorPin)
		if err != nil {
			return hw, err
		}
		hw.Panel = indicator.NewPanel(be, hw.Console)
		hw.Lamp = lamp
	}

	// The host has no analog input, so the shared sense pin is a
	// simulated dual-role pin held at the configured pack voltage.
	sense := battery.NewMockPin(battery.CountsForVolts(cfg.Battery.SimulatedVolts))
	hw.Battery = battery.NewMonitor(sense)

	hw.Card = storage.NewDirCard(cfg.Storage.DataDirectory)
	hw.RTC = clock.NewSystemRTC()
	hw.Millis = clock.NewMillis()
	return hw, nil
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
