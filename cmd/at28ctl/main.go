package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/akamensky/argparse"
	"github.com/rs/zerolog"

	"github.com/eeprom-tools/at28ctl/image"
	"github.com/eeprom-tools/at28ctl/session"
	"github.com/eeprom-tools/at28ctl/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	defs, err := loadDefaults(configPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	parser := argparse.NewParser("at28ctl", "A program to interact with AT28C EEPROM chips")

	port := parser.String("p", "port", &argparse.Options{
		Help: "Path to the port where the board is connected", Default: defs.Port})
	baudRate := parser.Int("b", "baud-rate", &argparse.Options{
		Help: "Baud rate for the connection", Default: defs.BaudRate})
	timeout := parser.Int("t", "timeout", &argparse.Options{
		Help: "Read timeout in milliseconds", Default: int(defs.Timeout / time.Millisecond)})
	verbose := parser.Flag("v", "verbose", &argparse.Options{
		Help: "Log the packet exchange"})

	readCmd := parser.NewCommand("read", "Dumps the EEPROM data to a file")
	outFile := readCmd.String("o", "out-file", &argparse.Options{
		Required: true, Help: "Destination file for the dump"})
	start := readCmd.String("s", "start", &argparse.Options{
		Help: "First address to read", Default: "0x0000"})
	end := readCmd.String("e", "end", &argparse.Options{
		Help: "Address to stop reading at (exclusive)", Default: "0x8000"})

	writeCmd := parser.NewCommand("write", "Writes a file to the EEPROM")
	writeFile := writeCmd.String("f", "file", &argparse.Options{
		Required: true, Help: "Payload file (raw binary or Intel HEX)"})
	noVerify := writeCmd.Flag("", "no-verify", &argparse.Options{
		Help: "Skip the verification pass after writing"})

	verifyCmd := parser.NewCommand("verify", "Verifies the EEPROM's data against a file")
	verifyFile := verifyCmd.String("f", "file", &argparse.Options{
		Required: true, Help: "Payload file (raw binary or Intel HEX)"})
	fix := verifyCmd.Flag("", "fix", &argparse.Options{
		Help: "Rewrite mismatched bytes after verifying"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		return 1
	}

	cmd, err := buildCommand(readCmd, writeCmd, verifyCmd,
		*outFile, *start, *end, *writeFile, !*noVerify, *verifyFile, *fix)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := newLogger(*verbose)

	fmt.Println("Opening serial port...")
	link, err := transport.Open(*port, *baudRate, time.Duration(*timeout)*time.Millisecond)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer link.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := newRenderer(os.Stdout)
	m := session.New(link, cmd,
		session.WithEffectSink(render.render),
		session.WithLogger(sessionLogger{log: logger}),
		session.WithSourceLoader(image.Load),
	)

	if err := m.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// buildCommand maps the parsed CLI surface onto the session command.
func buildCommand(readCmd, writeCmd, verifyCmd *argparse.Command,
	outFile, start, end, writeFile string, verify bool, verifyFile string, fix bool,
) (session.Command, error) {
	switch {
	case readCmd.Happened():
		startAddr, err := parseAddress(start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start: %w", err)
		}
		endAddr, err := parseAddress(end)
		if err != nil {
			return nil, fmt.Errorf("invalid --end: %w", err)
		}
		return session.Read{OutPath: outFile, Start: startAddr, End: endAddr}, nil

	case writeCmd.Happened():
		return session.Write{InPath: writeFile, Verify: verify}, nil

	case verifyCmd.Happened():
		return session.Verify{InPath: verifyFile, Fix: fix}, nil

	default:
		return nil, fmt.Errorf("no command given")
	}
}

// parseAddress accepts decimal or prefixed (0x, 0o, 0b) 16-bit values.
func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func newLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}

// sessionLogger adapts zerolog to the session's Logger interface.
type sessionLogger struct {
	log zerolog.Logger
}

func (l sessionLogger) Debug(msg string, kv ...interface{}) { l.emit(l.log.Debug(), msg, kv) }
func (l sessionLogger) Info(msg string, kv ...interface{})  { l.emit(l.log.Info(), msg, kv) }
func (l sessionLogger) Error(msg string, kv ...interface{}) { l.emit(l.log.Error(), msg, kv) }

func (l sessionLogger) emit(e *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	e.Msg(msg)
}
