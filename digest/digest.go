// Package digest produces cryptographic hashes of the ZX81 video output. The
// hash can be used to compare output from subsequent emulation executions. If
// a new hash differs from a previously recorded value then something has
// changed.
package digest

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash is achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
