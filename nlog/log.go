// Package nlog provides the optional diagnostic logging used while building
// and parsing NIST-ITL messages. It is silent until a caller attaches a
// Provider and enables it.
package nlog

import (
	"log"
	"os"
	"sync/atomic"
)

// Provider receives diagnostic messages. Only Warn and Debug are used by
// this module: Warn for standard-mandated deprecation notices, Debug for
// parser tracing.
type Provider interface {
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Log wraps a Provider behind an enable/disable flag so callers that never
// attach a provider pay no logging cost.
type Log struct {
	provider Provider
	has      uint32 // 1: enabled, 0: disabled
}

// New returns a Log with the standard library logger as its default
// provider, disabled until Enable is called.
func New() *Log {
	return &Log{provider: defaultProvider{log.New(os.Stderr, "nistitl: ", log.LstdFlags)}}
}

// Enable turns log output on or off.
func (l *Log) Enable(on bool) {
	if on {
		atomic.StoreUint32(&l.has, 1)
	} else {
		atomic.StoreUint32(&l.has, 0)
	}
}

// SetProvider swaps the underlying Provider. A nil provider is ignored.
func (l *Log) SetProvider(p Provider) {
	if p != nil {
		l.provider = p
	}
}

// Warn logs a WARN level message, e.g. the deprecated-record-type notice.
func (l *Log) Warn(format string, v ...interface{}) {
	if atomic.LoadUint32(&l.has) == 1 {
		l.provider.Warn(format, v...)
	}
}

// Debug logs a DEBUG level message, used for parser tracing.
func (l *Log) Debug(format string, v ...interface{}) {
	if atomic.LoadUint32(&l.has) == 1 {
		l.provider.Debug(format, v...)
	}
}

type defaultProvider struct {
	*log.Logger
}

var _ Provider = (*defaultProvider)(nil)

func (d defaultProvider) Warn(format string, v ...interface{}) {
	d.Printf("[W]: "+format, v...)
}

func (d defaultProvider) Debug(format string, v ...interface{}) {
	d.Printf("[D]: "+format, v...)
}
