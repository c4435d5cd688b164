// Package checksum detects copy collisions by content digest.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Outcome of claiming a destination path.
type Outcome int

const (
	// Fresh means nothing was written to the destination yet.
	Fresh Outcome = iota
	// Duplicate means the destination already holds identical content.
	Duplicate
	// Conflict means the destination already holds different content.
	Conflict
)

// Ledger remembers the digest of everything written per destination.
type Ledger struct {
	sums map[string]string
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{sums: make(map[string]string)}
}

// Claim records data for dst unless dst was claimed before, in which case
// the earlier claim stands.
func (l *Ledger) Claim(dst string, data []byte) Outcome {
	sum := Sum(data)
	prev, seen := l.sums[dst]
	switch {
	case !seen:
		l.sums[dst] = sum
		return Fresh
	case prev == sum:
		return Duplicate
	default:
		return Conflict
	}
}
