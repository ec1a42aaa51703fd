//go:build blockxform_debug

package dst

const invariantChecks = true
