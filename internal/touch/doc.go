// Package touch provides a synthetic single-finger touch device for driving
// a shell under test.
//
// A Touch owns one touch session at a time. Press begins the session, Move
// relocates it and Release ends it; Tap, TapObject and Drag are composed from
// those three. Every operation is turned into one or more Event values and
// handed to a Sink, which is where the events reach the system under test:
// directly, for an in-process shell model, or encoded as xterm SGR mouse
// sequences (see SGRSink) for a shell running in a pseudo-terminal.
//
// A Touch is driven from a single goroutine. It is not safe for concurrent
// use.
package touch
