// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// drawWidth is the number of leading entropy bytes read as the draw value.
const drawWidth = 4

// defaultSecondaryLen is the number of crypto/rand bytes mixed into each digest.
const defaultSecondaryLen = 32

// EntropySource produces a fixed-length block of random bytes per call.
// Implementations must return at least four bytes and must not fall back to a
// non-cryptographic generator on failure.
type EntropySource interface {
	Read(ctx context.Context) ([]byte, error)
}

// EntropyFunc adapts a plain function to EntropySource.
type EntropyFunc func(ctx context.Context) ([]byte, error)

// Read calls f.
func (f EntropyFunc) Read(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Digest names the hash used by HashedSource.
type Digest string

// Supported digests
const (
	DigestSHA256  Digest = "sha256"
	DigestBLAKE2b Digest = "blake2b"
)

// ParseDigest converts a config value into a Digest.
func ParseDigest(name string) (Digest, error) {
	switch Digest(strings.ToLower(strings.TrimSpace(name))) {
	case DigestSHA256, "":
		return DigestSHA256, nil
	case DigestBLAKE2b:
		return DigestBLAKE2b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDigest, name)
	}
}

// HashedSource derives entropy by hashing a nanosecond timestamp together
// with an independent block from a secure reader (crypto/rand by default).
// It is safe for concurrent use when its reader is.
type HashedSource struct {
	digest       Digest
	reader       io.Reader
	now          func() time.Time
	secondaryLen int
}

// HashedSourceOption configures a HashedSource.
type HashedSourceOption func(*HashedSource)

// WithReader replaces the secondary random reader.
func WithReader(r io.Reader) HashedSourceOption {
	return func(s *HashedSource) {
		s.reader = r
	}
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) HashedSourceOption {
	return func(s *HashedSource) {
		s.now = now
	}
}

// NewHashedSource creates the production entropy source.
func NewHashedSource(digest Digest, opts ...HashedSourceOption) (*HashedSource, error) {
	if digest != DigestSHA256 && digest != DigestBLAKE2b {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDigest, digest)
	}

	s := &HashedSource{
		digest:       digest,
		reader:       rand.Reader,
		now:          time.Now,
		secondaryLen: defaultSecondaryLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Digest returns the configured digest name.
func (s *HashedSource) Digest() Digest {
	return s.digest
}

// Read returns one digest of timestamp || secondary random bytes.
func (s *HashedSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &EntropySourceError{Op: "read", Err: err}
	}

	secondary := make([]byte, s.secondaryLen)
	if _, err := io.ReadFull(s.reader, secondary); err != nil {
		return nil, &EntropySourceError{Op: "read", Err: err}
	}

	var stamp [8]byte
	binary.BigEndian.PutUint64(stamp[:], uint64(s.now().UnixNano())) //nolint:gosec // G115: sign bit is irrelevant for hashing

	h, err := s.newHash()
	if err != nil {
		return nil, &EntropySourceError{Op: "digest", Err: err}
	}
	h.Write(stamp[:])
	h.Write(secondary)
	return h.Sum(nil), nil
}

func (s *HashedSource) newHash() (hash.Hash, error) {
	switch s.digest {
	case DigestBLAKE2b:
		return blake2b.New256(nil)
	default:
		return sha256.New(), nil
	}
}

// errShortEntropy indicates a source returned fewer bytes than a draw needs.
var errShortEntropy = errors.New("entropy block shorter than draw width")

// drawUint32 reads one entropy block and interprets its prefix as a big-endian uint32.
func drawUint32(ctx context.Context, src EntropySource) (uint32, error) {
	if src == nil {
		return 0, &EntropySourceError{Op: "read", Err: errors.New("no entropy source configured")}
	}
	if err := ctx.Err(); err != nil {
		return 0, &EntropySourceError{Op: "read", Err: err}
	}

	block, err := src.Read(ctx)
	if err != nil {
		return 0, entropyError("read", err)
	}
	if len(block) < drawWidth {
		return 0, &EntropySourceError{Op: "read", Err: errShortEntropy}
	}
	return binary.BigEndian.Uint32(block[:drawWidth]), nil
}
