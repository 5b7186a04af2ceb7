// Package id provides identifier types and generators: typed integer
// database identifiers and sortable ULIDs for request tracing.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a ULID: 10 characters of millisecond timestamp followed
// by 16 characters of randomness. ULIDs sort lexicographically by creation time.
func NewULID() string {
	ms := uint64(time.Now().UnixMilli())

	entropy := make([]byte, 10)
	if _, err := rand.Read(entropy); err != nil {
		binary.BigEndian.PutUint64(entropy[:8], uint64(time.Now().UnixNano()))
	}

	var out [26]byte

	// 48-bit timestamp, 5 bits per character, most significant first.
	for i := range 10 {
		shift := uint(45 - 5*i)
		out[i] = crockfordBase32[(ms>>shift)&0x1F]
	}

	// 80 random bits split into two 40-bit halves, 8 characters each.
	for half := range 2 {
		var chunk uint64
		for _, b := range entropy[half*5 : half*5+5] {
			chunk = chunk<<8 | uint64(b)
		}
		for i := range 8 {
			shift := uint(35 - 5*i)
			out[10+half*8+i] = crockfordBase32[(chunk>>shift)&0x1F]
		}
	}

	return string(out[:])
}
