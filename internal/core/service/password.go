package service

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength = 16

	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	symbolChars  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	allPassChars = lowerChars + upperChars + digitChars + symbolChars
)

// GeneratePassword returns a 16-character password containing at least one
// lowercase letter, one uppercase letter, one digit and one symbol. Filler
// characters are inserted at random positions so no character class sits at a
// fixed offset.
func GeneratePassword() string {
	pw := []byte{
		pick(lowerChars),
		pick(upperChars),
		pick(digitChars),
		pick(symbolChars),
	}
	for len(pw) < passwordLength {
		pos := randInt(len(pw) + 1)
		pw = append(pw[:pos], append([]byte{pick(allPassChars)}, pw[pos:]...)...)
	}
	return string(pw)
}

func pick(set string) byte {
	return set[randInt(len(set))]
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// there is no usable fallback for credential material.
		panic(err)
	}
	return int(v.Int64())
}
