// Package slug generates the short random identifiers that key stored links.
package slug

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
)

// Alphabet is the base-36 character set slugs are drawn from.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Slug length bounds. Operational routes are longer than MaxLength so a
// generated slug can never shadow them.
const (
	MinLength     = 5
	MaxLength     = 6
	DefaultLength = 6
)

// Generator produces random slugs of a fixed length.
// It is safe for concurrent use.
type Generator struct {
	length int
	reader io.Reader
}

// NewGenerator returns a Generator for the given length. Lengths outside
// [MinLength, MaxLength] fall back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length < MinLength || length > MaxLength {
		length = DefaultLength
	}
	return &Generator{length: length, reader: rand.Reader}
}

// Length returns the number of characters in each generated slug.
func (g *Generator) Length() int {
	return g.length
}

// Generate creates a new slug.
func (g *Generator) Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(g.length)

	alphabetLength := big.NewInt(int64(len(Alphabet)))

	for i := 0; i < g.length; i++ {
		randomIndex, err := rand.Int(g.reader, alphabetLength)
		if err != nil {
			return "", err
		}
		sb.WriteByte(Alphabet[randomIndex.Int64()])
	}
	return sb.String(), nil
}
