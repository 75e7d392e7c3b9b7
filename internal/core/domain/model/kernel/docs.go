// Package kernel holds the value objects shared by every aggregate of the
// order engine: UUID identifiers and WGS84 Coordinates.
//
// Both are immutable, and their zero values fail validation so that data
// rebuilt from storage or decoded from requests cannot slip through unchecked.
package kernel
