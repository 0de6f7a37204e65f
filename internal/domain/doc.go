// Package domain contains the core entities of the drill: per-prompt
// scheduling records, the answer key they are graded against, the day-based
// time unit stored in grade sheets, and the errors that end a session.
// It is independent of any storage format or terminal.
package domain
