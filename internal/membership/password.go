package membership

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// passwordAlphabet leaves out characters that are easily confused when
// read from an email (0/O, 1/l/I).
const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const defaultPasswordLength = 10

// GenerateDefaultPassword returns a random password for members who did
// not choose their own.
func (s *Service) GenerateDefaultPassword() (string, error) {
	return randomPassword(defaultPasswordLength)
}

func randomPassword(length int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
