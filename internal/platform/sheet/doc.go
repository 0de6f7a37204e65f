// Package sheet stores answer keys and grade sheets in flat tabular files.
//
// The backend is picked from the file extension: ".xlsx" files are read and
// written with excelize, ".db" and ".sqlite" files are sqlite databases whose
// schema is managed by embedded goose migrations, and everything else is
// treated as CSV.
//
// Answer keys have two columns, prompt and answer. Grade sheets have four:
// prompt, last reviewed (fractional days since the Unix epoch), correct count
// and retention score.
package sheet
