package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULID job identifiers: 26-character Crockford Base32 strings with a
// millisecond timestamp prefix, so IDs generated by one process sort by
// creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a fresh job identifier.
func NewULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	// 48-bit timestamp -> 10 chars, 80-bit entropy -> 16 chars.
	var out [26]byte
	encodeCrockford(out[:10], b[:6])
	encodeCrockford(out[10:], b[6:])
	return string(out[:])
}

// encodeCrockford writes src as Crockford Base32, MSB first. When the bit
// count does not divide evenly, the leading character takes the remainder.
func encodeCrockford(dst, src []byte) {
	acc := uint32(0)
	nbits := 0
	j := len(dst)
	for i := len(src) - 1; i >= 0; i-- {
		acc |= uint32(src[i]) << nbits
		nbits += 8
		for nbits >= 5 && j > 0 {
			j--
			dst[j] = crockford[acc&31]
			acc >>= 5
			nbits -= 5
		}
	}
	for j > 0 {
		j--
		dst[j] = crockford[acc&31]
		acc >>= 5
	}
}
