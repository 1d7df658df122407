package commitment

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingReader simulates a broken entropy source
type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("device not ready")
}

func TestCommitKnownAnswers(t *testing.T) {
	// RFC 4231 HMAC-SHA256 test vectors
	tests := []struct {
		name    string
		key     Key
		message []byte
		want    string
	}{
		{
			name:    "test case 1",
			key:     Key(bytes.Repeat([]byte{0x0b}, 20)),
			message: []byte("Hi There"),
			want:    "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
		},
		{
			name:    "test case 2",
			key:     Key("Jefe"),
			message: []byte("what do ya want for nothing?"),
			want:    "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
		{
			name:    "test case 3",
			key:     Key(bytes.Repeat([]byte{0xaa}, 20)),
			message: bytes.Repeat([]byte{0xdd}, 50),
			want:    "773ea91e36800e46854db8ebd09181a72959098b3ef8c122d9635514ced565fe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := Commit(tt.key, tt.message)
			assert.Equal(t, tt.want, digest.String())
			assert.Len(t, digest, DigestSize)
		})
	}
}

func TestCommitDeterministic(t *testing.T) {
	key := Key(bytes.Repeat([]byte{0x42}, KeySize))
	first := Commit(key, []byte("lizard"))
	second := Commit(key, []byte("lizard"))
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, Commit(key, []byte("spock")))
}

func TestVerify(t *testing.T) {
	scheme := NewScheme(nil)
	key, err := scheme.NewKey()
	require.NoError(t, err)

	message := []byte("scissors")
	digest := Commit(key, message)

	t.Run("round trip", func(t *testing.T) {
		assert.True(t, Verify(key, message, digest))
	})

	t.Run("different message", func(t *testing.T) {
		assert.False(t, Verify(key, []byte("rock"), digest))
	})

	t.Run("tampered digest", func(t *testing.T) {
		tampered := append(Digest(nil), digest...)
		tampered[0] ^= 0x01
		assert.False(t, Verify(key, message, tampered))
	})

	t.Run("truncated digest", func(t *testing.T) {
		assert.False(t, Verify(key, message, digest[:DigestSize-1]))
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := scheme.NewKey()
		require.NoError(t, err)
		assert.False(t, Verify(other, message, digest))
	})
}

func TestNewKey(t *testing.T) {
	t.Run("uses injected source", func(t *testing.T) {
		src := bytes.NewReader(bytes.Repeat([]byte{0x07}, KeySize))
		key, err := NewScheme(src).NewKey()
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("07", KeySize), key.String())
	})

	t.Run("failing source", func(t *testing.T) {
		_, err := NewScheme(failingReader{}).NewKey()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEntropyUnavailable))
	})

	t.Run("short source", func(t *testing.T) {
		src := bytes.NewReader(make([]byte, KeySize/2))
		_, err := NewScheme(src).NewKey()
		assert.ErrorIs(t, err, ErrEntropyUnavailable)
	})

	t.Run("exhausted source", func(t *testing.T) {
		_, err := NewScheme(io.LimitReader(bytes.NewReader(nil), 0)).NewKey()
		assert.ErrorIs(t, err, ErrEntropyUnavailable)
	})
}

func TestNewKeyUnique(t *testing.T) {
	scheme := NewScheme(nil)
	seen := make(map[string]bool, 10000)

	for i := 0; i < 10000; i++ {
		key, err := scheme.NewKey()
		require.NoError(t, err)
		require.Len(t, key, KeySize)

		s := key.String()
		if seen[s] {
			t.Fatalf("duplicate key generated after %d keys: %s", i, s)
		}
		seen[s] = true
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, []byte("rock"), Message("", "rock"))
	assert.Equal(t, []byte("01jabc:rock"), Message("01jabc", "rock"))
}

func TestParseKey(t *testing.T) {
	valid := strings.Repeat("ab", KeySize)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: valid},
		{name: "uppercase", input: strings.ToUpper(valid)},
		{name: "surrounding whitespace", input: "  " + valid + "\n"},
		{name: "empty", input: "", wantErr: true},
		{name: "odd length", input: valid[1:], wantErr: true},
		{name: "not hex", input: strings.Repeat("zz", KeySize), wantErr: true},
		{name: "too short", input: "abcd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParseKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, key.String())
		})
	}
}

func TestParseDigest(t *testing.T) {
	key := Key(bytes.Repeat([]byte{0x01}, KeySize))
	digest := Commit(key, []byte("paper"))

	parsed, err := ParseDigest(digest.String())
	require.NoError(t, err)
	assert.True(t, Verify(key, []byte("paper"), parsed))

	_, err = ParseDigest(digest.String()[:10])
	assert.Error(t, err)

	_, err = ParseDigest("not-a-digest")
	assert.Error(t, err)
}
