// Package drill schedules and runs review sessions.
//
// A Scheduler builds the working set of records and ranks it by retention
// score; a Session drives the interactive loop through a Port, always
// drilling the record the user is most likely to have forgotten.
package drill
