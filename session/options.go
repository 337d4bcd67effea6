package session

import "os"

// Logger is an optional logging interface that can be provided to the
// session. This allows integration with any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// SourceLoader reads a write/verify payload into memory. The default
// loader reads the file verbatim; the CLI installs image.Load so hex
// images work transparently.
type SourceLoader func(path string) ([]byte, error)

// Config holds the session configuration.
type Config struct {
	// Sink receives effects as the session emits them (optional)
	Sink EffectSink

	// Logger is used for debug logging of the packet exchange (optional)
	Logger Logger

	// LoadSource reads the payload for write and verify sessions
	LoadSource SourceLoader
}

func defaultConfig() Config {
	return Config{
		LoadSource: os.ReadFile,
	}
}

// Option is a functional option for configuring a session Machine.
type Option func(*Config)

// WithEffectSink sets the sink that renders session effects.
//
// Example:
//
//	m := session.New(port, cmd, session.WithEffectSink(func(e session.Effect) {
//	    if p, ok := e.(session.PrintLine); ok {
//	        fmt.Println(p.Text)
//	    }
//	}))
func WithEffectSink(sink EffectSink) Option {
	return func(c *Config) {
		c.Sink = sink
	}
}

// WithLogger sets a logger for the packet exchange.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSourceLoader sets the loader used to read write/verify payloads.
func WithSourceLoader(load SourceLoader) Option {
	return func(c *Config) {
		if load != nil {
			c.LoadSource = load
		}
	}
}
