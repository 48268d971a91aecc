package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"
)

// newOrderCode produces a short human-readable order code, three uppercase
// letters followed by three digits.
func newOrderCode() (string, error) {
	buf := make([]byte, 6)
	for i := 0; i < 3; i++ {
		c, err := randByte(codeLetters)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	for i := 3; i < 6; i++ {
		c, err := randByte(codeDigits)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	return string(buf), nil
}

func randByte(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("generate order code: %w", err)
	}
	return alphabet[n.Int64()], nil
}
