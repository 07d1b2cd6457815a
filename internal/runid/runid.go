// Package runid names simulation runs and server requests with sortable,
// TypeID style identifiers: a prefix, an underscore and a UUIDv7 in
// Crockford base32.
package runid

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// encodedLen is 128 bits in 5 bit groups with two leading pad bits.
const encodedLen = 26

var decodeMap = func() (m [256]int8) {
	for i := range m {
		m[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = int8(i)
	}
	return m
}()

// New returns a fresh identifier such as "sim_01j9x...". IDs generated
// later sort after earlier ones.
func New(prefix string) (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "_" + Encode(u), nil
}

// Must is New that panics, for tests and fixed setup code.
func Must(prefix string) string {
	id, err := New(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

// Encode renders u as 26 base32 characters.
func Encode(u uuid.UUID) string {
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])
	var out [encodedLen]byte
	for i := range out {
		shift := uint(125 - 5*i)
		var v uint64
		switch {
		case shift >= 64:
			v = hi >> (shift - 64)
		case shift+5 <= 64:
			v = lo >> shift
		default:
			v = lo>>shift | hi<<(64-shift)
		}
		out[i] = alphabet[v&0x1f]
	}
	return string(out[:])
}

// Parse splits an identifier into its prefix and UUID.
func Parse(id string) (string, uuid.UUID, error) {
	cut := strings.LastIndexByte(id, '_')
	if cut < 0 {
		return "", uuid.Nil, fmt.Errorf("id %q has no prefix", id)
	}
	prefix, body := id[:cut], id[cut+1:]
	if len(body) != encodedLen {
		return "", uuid.Nil, fmt.Errorf("id must have %d characters after the prefix, got %d", encodedLen, len(body))
	}
	if body[0] > '7' {
		return "", uuid.Nil, fmt.Errorf("id first character must be 0-7, got %c", body[0])
	}
	var hi, lo uint64
	for i := 0; i < len(body); i++ {
		v := decodeMap[body[i]]
		if v < 0 {
			return "", uuid.Nil, fmt.Errorf("invalid character %c at position %d", body[i], i)
		}
		hi = hi<<5 | lo>>59
		lo = lo<<5 | uint64(v)
	}
	var u uuid.UUID
	binary.BigEndian.PutUint64(u[:8], hi)
	binary.BigEndian.PutUint64(u[8:], lo)
	return prefix, u, nil
}
