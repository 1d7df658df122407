// Package roundid generates sortable identifiers for game rounds.
package roundid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Crockford base32 alphabet (no i, l, o, u)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded round ID
const Length = 26

// Generator creates round IDs from a UUIDv7 source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator reading the random part of each UUID from r.
// A nil reader uses the uuid package's default (crypto/rand).
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a round ID with the default generator
func Generate() (string, error) {
	return NewGenerator(nil).Generate()
}

// Generate returns a new UUIDv7 encoded as a 26-character base32 string.
// IDs sort by creation time.
func (g *Generator) Generate() (string, error) {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate round ID: %w", err)
	}
	return encodeBase32(id), nil
}

// encodeBase32 encodes 128 bits as 26 base32 characters, 5 bits at a time
// from the most significant end. The final character carries the last 3 bits.
func encodeBase32(data uuid.UUID) string {
	var sb strings.Builder
	sb.Grow(Length)

	for i := 0; i < Length; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < len(data) {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		sb.WriteByte(alphabet[value])
	}

	return sb.String()
}

// Validate checks that id is 26 lowercase Crockford base32 characters.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
