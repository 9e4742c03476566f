package security

import (
	"crypto/rand"
	"errors"
)

var (
	ErrNegativeLength = errors.New("length must be non-negative")
	ErrEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using the
// crypto source. Bytes outside the largest multiple of the alphabet size are
// discarded so no character is favored.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", ErrNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", ErrEmptyAlphabet
	}

	limit := byte(256 - 256%len(alphabet))
	out := make([]byte, 0, length)
	buffer := make([]byte, length*2)
	for len(out) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if limit != 0 && b >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
