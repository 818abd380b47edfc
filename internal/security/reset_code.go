package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const resetCodeDigits = 4

var resetCodeSpace = big.NewInt(10000)

// GenerateResetCode returns a uniformly random 4-digit code, left-padded with
// zeros. The small space is acceptable because codes expire quickly and failed
// attempts are counted and capped.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, resetCodeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", resetCodeDigits, n), nil
}
