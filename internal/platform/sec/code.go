// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet is the character set for confirmation codes. Alphanumeric
// only, so codes survive copy-paste from any mail client.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateConfirmationCode returns a fixed-length random code drawn from
// [codeAlphabet] using a cryptographically secure source.
func GenerateConfirmationCode(length int) (string, error) {
	code := make([]byte, length)
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))

	for i := range code {
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
		}
		code[i] = codeAlphabet[index.Int64()]
	}

	return string(code), nil
}
