package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for resolved orders.
type Keyer interface {
	// OrderKey returns the key for an order resolved from inputs with the
	// given fingerprint (see Fingerprint) and options.
	OrderKey(fingerprint string, opts OrderKeyOpts) string
}

// OrderKeyOpts are the resolution options that change the result.
type OrderKeyOpts struct {
	Strategy string `json:"strategy"`
}

// DefaultKeyer produces unprefixed keys of the form "order:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OrderKey implements Keyer.
func (DefaultKeyer) OrderKey(fingerprint string, opts OrderKeyOpts) string {
	return hashKey("order", fingerprint, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys. A nil inner keyer means
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OrderKey implements Keyer.
func (k *ScopedKeyer) OrderKey(fingerprint string, opts OrderKeyOpts) string {
	return k.prefix + k.inner.OrderKey(fingerprint, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Fingerprint hashes the JSON encoding of v. Map keys are sorted by
// encoding/json, so equal values always give equal fingerprints.
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
