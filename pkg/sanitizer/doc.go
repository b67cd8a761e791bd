// Package sanitizer normalizes untrusted profile strings before they reach
// storage.
package sanitizer
