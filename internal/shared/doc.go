// Package shared holds code used across tabprep packages that belongs to no
// single layer.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and helpers that write CSV, xlsx and manifest fixtures into a
// test's temporary directory.
package shared
