// Package platform wraps the OS primitives the cache relies on: advisory
// whole-file locks and filesystem free-space queries.
package platform
