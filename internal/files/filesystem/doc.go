// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The scanner reads source trees and the emitter writes bundle folders
// through these interfaces, so both can be tested against an in-memory
// tree with the same code paths used against the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: open, walk, read and stat
//   - FileWriter: write files, create and remove directories
//   - FileSystem: both of the above
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: in-memory implementation for testing, safe for
//     concurrent use
package filesystem
