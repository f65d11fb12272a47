package id

import "crypto/rand"

const chars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID creates a unique 16-character alphanumeric ID.
func GenerateID() string {
	return random(16)
}

// WithPrefix returns a generated ID namespaced by an entity prefix,
// e.g. "mt_k2j4..." for mock tests or "att_..." for attempts.
func WithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateID()
	}
	return prefix + "_" + random(16)
}

func random(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
