// Package repositories defines interfaces for data access layers.
package repositories

// InputSource provides raw input values by name (e.g. "github-token")
type InputSource interface {
	// Lookup returns the raw value of an input and whether the source defines it
	Lookup(name string) (string, bool)
}
