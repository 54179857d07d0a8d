package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// Record IDs are fixed-length alphanumeric nanoids. The default alphabet's
// punctuation is dropped so IDs stay clean in URLs and storage keys.
const (
	nanoidLen      = 32
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func NanoID() string {
	return gonanoid.MustGenerate(nanoidAlphabet, nanoidLen)
}
