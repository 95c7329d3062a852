// Package application performs client startup: it publishes the configuration
// through the write-once holder, reports what was loaded, and derives the
// runtime policies other components consume. Keeping this out of main leaves
// the command focused on flag parsing and output.
package application
