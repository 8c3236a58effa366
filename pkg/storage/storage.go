// Package storage abstracts where uploaded receipt files live so the
// backing store can be swapped without touching calling code.
package storage

// Driver is the capability surface a backing store must provide.
type Driver interface {
	// Save persists the payload under key and returns the stored key.
	Save(data []byte, key string) (string, error)
	// Delete removes a stored file, reporting whether it existed.
	Delete(key string) bool
	// URL returns the public URL a stored key is served under.
	URL(key string) string
}
