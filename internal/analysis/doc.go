// Package analysis extracts periodicity and settling behavior from the
// per-frame series of a run.
//
// A run's mean height above the floor oscillates while boxes bounce; its
// dominant frequency is the bounce rate:
//
//	freq, _ := analysis.DominantFrequency(heights, 1000/frameMs)
package analysis
