package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePassword returns a random temporary password of the given length.
func GeneratePassword(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out)
}

// GenerateOTP returns a random 6-digit verification code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}
