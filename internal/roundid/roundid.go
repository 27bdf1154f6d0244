// Package roundid generates time-ordered identifiers for table rounds so the
// log lines of one round can be correlated.
package roundid

import (
	"encoding/binary"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded identifier
const Length = 26

// Generator creates UUIDv7-style identifiers from a clock and a seeded
// random source. A Generator is not safe for concurrent use.
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator creates a generator. A nil clock uses real time.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if rng == nil {
		panic("rng is required for round id generation")
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Next returns a new identifier. Identifiers from later milliseconds sort
// after earlier ones.
func (g *Generator) Next() string {
	var id [16]byte

	// 48-bit millisecond timestamp, then random bits
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint64(id[:8], ms<<16|g.rng.Uint64()&0xffff)
	binary.BigEndian.PutUint64(id[8:], g.rng.Uint64())

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return encode(id)
}

// encode renders 128 bits as base32, most significant first, with two
// implicit leading zero bits
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters encoding at most 128 bits
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round id first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
