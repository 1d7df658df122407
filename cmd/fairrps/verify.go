package main

import (
	"crypto/hmac"
	"errors"
	"fmt"

	"github.com/lox/fairrps/internal/commitment"
)

var errMismatch = errors.New("digest does not match: the committed move was not the one revealed")

// VerifyCmd recomputes a commitment from the revealed key
type VerifyCmd struct {
	Move   string `arg:"" help:"Computer move as revealed after the round"`
	Key    string `required:"" help:"HMAC key revealed after the round (hex of the raw key bytes; openssl takes it as -macopt hexkey:)"`
	Digest string `required:"" help:"HMAC printed before the round (hex)"`
	Nonce  string `help:"Round nonce, if the round bound one"`
}

func (c *VerifyCmd) Run(s *streams) error {
	key, err := commitment.ParseKey(c.Key)
	if err != nil {
		return err
	}
	digest, err := commitment.ParseDigest(c.Digest)
	if err != nil {
		return err
	}

	computed := commitment.Commit(key, commitment.Message(c.Nonce, c.Move))
	fmt.Fprintf(s.Out, "Computed HMAC: %s\n", computed)
	fmt.Fprintf(s.Out, "Expected HMAC: %s\n", digest)

	if !hmac.Equal(computed, digest) {
		fmt.Fprintln(s.Out, "MISMATCH")
		return errMismatch
	}
	fmt.Fprintln(s.Out, "MATCH")
	return nil
}
