// Package sqlite provides SQLite-backed character persistence.
//
// Character documents are stored whole, one row per character, next to an
// append-only log of the mutations applied to them.
package sqlite
