// Package commitment implements the HMAC-SHA256 commit-reveal scheme used to
// prove that the computer picked its move before the human did.
//
// The computer generates a fresh key, publishes Commit(key, move) and keeps the
// key private. Once the human move is locked in the key is revealed and anyone
// can recompute the digest:
//
//	scheme := commitment.NewScheme(rand.Reader)
//	key, err := scheme.NewKey()
//	digest := commitment.Commit(key, []byte("paper"))
//	// ... later
//	ok := commitment.Verify(key, []byte("paper"), digest)
package commitment

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// KeySize is the length of generated keys in bytes (256 bits).
	KeySize = 32

	// DigestSize is the length of an HMAC-SHA256 tag in bytes.
	DigestSize = sha256.Size
)

// ErrEntropyUnavailable is returned when the secure random source cannot
// supply a full key. It is fatal for the round.
var ErrEntropyUnavailable = errors.New("secure entropy unavailable")

// Key is the secret HMAC key for one round.
type Key []byte

// String returns the key as lowercase hex.
func (k Key) String() string {
	return hex.EncodeToString(k)
}

// Digest is the HMAC tag published before the human chooses.
type Digest []byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Scheme generates keys from an explicit entropy source.
type Scheme struct {
	entropy io.Reader
}

// NewScheme creates a scheme reading keys from entropy. A nil reader uses
// crypto/rand.
func NewScheme(entropy io.Reader) *Scheme {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Scheme{entropy: entropy}
}

// NewKey reads KeySize bytes from the entropy source. It does not retry.
func (s *Scheme) NewKey() (Key, error) {
	key := make(Key, KeySize)
	if _, err := io.ReadFull(s.entropy, key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return key, nil
}

// Commit computes HMAC-SHA256(key, message).
func Commit(key Key, message []byte) Digest {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// Verify reports whether digest is the commitment of message under key.
// The comparison is constant time.
func Verify(key Key, message []byte, digest Digest) bool {
	return hmac.Equal(Commit(key, message), digest)
}

// Message builds the committed bytes for a move. With an empty nonce the move
// name is committed as-is; otherwise the nonce is bound in front of it.
func Message(nonce, move string) []byte {
	if nonce == "" {
		return []byte(move)
	}
	return []byte(nonce + ":" + move)
}

// ParseKey decodes a hex key as printed after a round.
func ParseKey(s string) (Key, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	if len(b) < KeySize {
		return nil, fmt.Errorf("invalid key: need at least %d bytes, got %d", KeySize, len(b))
	}
	return Key(b), nil
}

// ParseDigest decodes a hex digest as printed before a round.
func ParseDigest(s string) (Digest, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid digest: %w", err)
	}
	if len(b) != DigestSize {
		return nil, fmt.Errorf("invalid digest: need %d bytes, got %d", DigestSize, len(b))
	}
	return Digest(b), nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty value")
	}
	return hex.DecodeString(strings.ToLower(s))
}
