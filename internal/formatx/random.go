package formatx

import (
	"crypto/rand"
	"math/big"
)

const (
	DefaultRandomLength = 8
	alphanumeric        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomString returns n characters drawn uniformly from [A-Za-z0-9].
// n <= 0 uses DefaultRandomLength.
func RandomString(n int) string {
	if n <= 0 {
		n = DefaultRandomLength
	}
	max := big.NewInt(int64(len(alphanumeric)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("formatx: crypto/rand failed: " + err.Error())
		}
		b[i] = alphanumeric[idx.Int64()]
	}
	return string(b)
}
