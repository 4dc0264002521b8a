// Package files contains dataset file discovery and the filesystem
// abstraction it is built on.
//
// Subpackages:
//   - filesystem: File system abstraction (OS and in-memory implementations)
//   - scanner: Dataset directory scanning and JSON file discovery
package files
