//go:build !blockxform_debug

package dst

// invariantChecks enables the int64 cross-check of every 1D accumulator.
// Build with -tags blockxform_debug to turn it on.
const invariantChecks = false
