// Package ostime converts between wall-clock durations and platform timer ticks and provides the Clock the lifecycle
// driver sleeps on. The platform timer runs at a quarter of the 248.625 MHz bus clock, so one millisecond is 62,156.25
// ticks; conversions truncate toward zero the same way the platform helpers do.
package ostime
