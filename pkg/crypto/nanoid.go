package crypto

import (
	"crypto/rand"
	"errors"
	"math"
	"math/bits"
)

const (
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	DefaultIDSize   = 21 // 126 bits with the default alphabet

	minAlphabetSize = 8
	maxAlphabetSize = 255
)

var (
	ErrAlphabetTooShort = errors.New("alphabet must contain at least 8 characters")
	ErrAlphabetTooLong  = errors.New("alphabet must contain no more than 255 characters")
	ErrAlphabetNotASCII = errors.New("alphabet must contain only ASCII characters")
	ErrInvalidIDSize    = errors.New("id size must be positive")
)

// NanoIDGenerator produces URL-safe random identifiers. It is safe for
// concurrent use.
type NanoIDGenerator struct {
	alphabet string
	mask     byte
}

// NewNanoID validates alphabet; an empty alphabet selects DefaultAlphabet.
func NewNanoID(alphabet string) (*NanoIDGenerator, error) {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] > 127 {
			return nil, ErrAlphabetNotASCII
		}
	}
	switch {
	case len(alphabet) < minAlphabetSize:
		return nil, ErrAlphabetTooShort
	case len(alphabet) > maxAlphabetSize:
		return nil, ErrAlphabetTooLong
	}

	return &NanoIDGenerator{
		alphabet: alphabet,
		mask:     maskFor(len(alphabet)),
	}, nil
}

// maskFor returns the smallest all-ones mask covering indexes [0, n).
func maskFor(n int) byte {
	return byte(1<<bits.Len(uint(n-1)) - 1)
}

// Generate returns an id of size characters. Random bytes whose masked value
// falls outside the alphabet are discarded, so every character is uniform.
func (g *NanoIDGenerator) Generate(size int) (string, error) {
	if size <= 0 {
		return "", ErrInvalidIDSize
	}

	step := int(math.Ceil(1.6 * float64(int(g.mask)*size) / float64(len(g.alphabet))))
	id := make([]byte, 0, size)
	buf := make([]byte, step)

	for len(id) < size {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if idx := int(b & g.mask); idx < len(g.alphabet) {
				id = append(id, g.alphabet[idx])
				if len(id) == size {
					break
				}
			}
		}
	}

	return string(id), nil
}

var defaultGenerator = &NanoIDGenerator{alphabet: DefaultAlphabet, mask: maskFor(len(DefaultAlphabet))}

// NewID returns a DefaultIDSize id from the default alphabet.
func NewID() (string, error) {
	return defaultGenerator.Generate(DefaultIDSize)
}
