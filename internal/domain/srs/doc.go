// Package srs implements the retention scoring used to decide which prompt
// to drill next.
//
// Each record's score estimates how well its prompt is still remembered,
// using a single exponential decay whose rate slows with every correct
// answer. The scheduler always drills the lowest-scoring prompt.
package srs
