// Package idgen mints and parses the identifiers images are stored under.
package idgen

import (
	"fmt"
	"strings"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/oklog/ulid/v2"
)

// EncodedLen is the length of a rendered identifier.
const EncodedLen = ulid.EncodedSize

// extensions tolerated at the end of a retrieval path segment.
var extensions = []string{".jpg", ".jpeg"}

type Generator interface {
	NewID() ulid.ULID
}

type ulidGenerator struct{}

// NewGenerator returns a Generator safe for concurrent use. Identifiers are
// time sortable and monotonic within the same millisecond.
func NewGenerator() Generator {
	return ulidGenerator{}
}

func (ulidGenerator) NewID() ulid.ULID {
	return ulid.Make()
}

// Render returns the URL-path-safe form of id.
func Render(id ulid.ULID) string {
	return id.String()
}

// Parse is the inverse of Render. Lower-case input is accepted.
func Parse(s string) (ulid.ULID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("%w: %q: %v", entity.ErrInvalidID, s, err)
	}
	return id, nil
}

// Normalize strips a trailing image extension from a path segment.
func Normalize(segment string) string {
	lower := strings.ToLower(segment)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return segment[:len(segment)-len(ext)]
		}
	}
	return segment
}

// ParseSegment normalizes and parses a retrieval path segment.
func ParseSegment(segment string) (ulid.ULID, error) {
	return Parse(Normalize(segment))
}
