// Package terminal implements the interactive drill port over a line-based
// text stream, normally the process's stdin and stdout.
package terminal
