// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying file formats from the drill's
// core logic: the scheduler only ever sees answer keys and records, never
// CSV rows, spreadsheet cells or SQL.
package store
