// Package matchid generates sortable identifiers for recorded matches.
//
// IDs are UUIDv7 values encoded as 26 lowercase Crockford base32
// characters, so lexical order follows creation time.
package matchid

import (
	"encoding/base32"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID.
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generate returns a new match ID.
func Generate() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate match id: %w", err)
	}
	return Encode(id), nil
}

// GenerateFromReader returns a match ID whose random bits come from r.
// Tests use it with a deterministic reader.
func GenerateFromReader(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate match id: %w", err)
	}
	return Encode(id), nil
}

// Encode formats a UUID as a match ID.
func Encode(id uuid.UUID) string {
	return encoding.EncodeToString(id[:])
}

// Parse decodes a match ID back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	if len(s) != Length {
		return uuid.Nil, fmt.Errorf("match ID must be exactly %d characters, got %d", Length, len(s))
	}
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid match ID %q: %w", s, err)
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid match ID %q: %w", s, err)
	}
	if id.Version() != 7 {
		return uuid.Nil, fmt.Errorf("invalid match ID %q: expected UUIDv7, got version %d", s, id.Version())
	}
	return id, nil
}

// Validate checks that s is a well formed match ID.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

// Time returns the creation time embedded in a match ID.
func Time(s string) (time.Time, error) {
	id, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}
