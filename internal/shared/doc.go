// Package shared holds helpers used across moviestats packages.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler for asserting on log output
//	- catalog CSV fixtures written under t.TempDir()
//
// Nothing in here may import domain logic packages, so every package's tests can use it.
package shared
