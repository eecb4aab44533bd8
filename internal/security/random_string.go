package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// CodeAlphabet is used for human-shareable codes. It drops the characters
// that are easy to misread over the phone (I, L, O, 0, 1).
const CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errors.New("length must be non-negative")
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errors.New("alphabet must not be empty")
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}
