package nistitl

import (
	"time"

	"github.com/go-nistitl/nistitl/nlog"
)

// Package-level constants for the defaults and bounds of this
// implementation.
const (
	// DefaultVersion is the value tag 1.002 (VER) is populated with.
	DefaultVersion = "0400"

	// MaxSerializedLength is an upper bound on a record's LEN value (a
	// defensive bound, not a standard-mandated limit). Nothing in this
	// package checks records against it: Serialize caps its LEN
	// fixed-point iteration at six rounds, not at a length.
	MaxSerializedLength = 999_999_999
)

// Options configures the few behaviors the standard does not fully pin
// down: the clock used for DAT, the transaction control number generator,
// default autosort, and the attached logger. Zero value is valid; Valid
// fills in defaults the same way the teacher's cs104.Config.Valid does.
type Options struct {
	// Clock supplies the current time for tag 1.005 (DAT). Defaults to
	// time.Now.
	Clock func() time.Time

	// TCNGenerator supplies a fresh value for tag 1.009 (TCN) on record-1
	// creation. Defaults to a random UUID.
	TCNGenerator func() string

	// Autosort is the default AsciiRecord.Autosort value for newly created
	// records.
	Autosort bool

	// Log receives deprecation warnings and parser trace output. Defaults
	// to a disabled *nlog.Log.
	Log *nlog.Log
}

// Valid applies defaults for each unset field, the way cs104.Config.Valid
// does for its timeouts.
func (o *Options) Valid() error {
	if o == nil {
		return newErr(BadContent, "nil Options")
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.TCNGenerator == nil {
		o.TCNGenerator = newTCN
	}
	if o.Log == nil {
		o.Log = nlog.New()
	}
	return nil
}

// DefaultOptions returns an Options already passed through Valid.
func DefaultOptions() Options {
	o := Options{}
	_ = o.Valid()
	return o
}
