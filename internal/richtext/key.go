package richtext

import "math/rand/v2"

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const defaultKeyLength = 12

// Key returns a random alphanumeric array key. Keys only need to be unique
// within one document array.
func Key() string {
	return KeyN(defaultKeyLength)
}

// KeyN returns a random alphanumeric key of length n.
func KeyN(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = keyAlphabet[rand.IntN(len(keyAlphabet))]
	}
	return string(b)
}
