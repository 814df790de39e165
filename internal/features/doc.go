// Package features computes time-domain features over windows of sampled
// input signals. These are the standard amplitude and frequency-content
// statistics used to reduce a raw input stream to per-trial measurements:
// mean absolute value (with optional windowing), waveform length, zero
// crossings, and slope sign changes.
//
// All transforms are stateless with respect to the signal: each call
// operates on one window of samples.
package features
