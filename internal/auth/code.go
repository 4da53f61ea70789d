package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeRange = 900000

// GenerateConfirmationCode produces a random 6-digit numeric code in the
// range 100000-999999.
func GenerateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
